package media

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryConfig holds the media host credentials.
type CloudinaryConfig struct {
	// URL has the form cloudinary://<key>:<secret>@<cloud name>.
	URL string
}

// CloudinaryUploader sends images to Cloudinary. Each file is one upload
// call with no retry.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryUploader creates an uploader from cfg.
func NewCloudinaryUploader(cfg CloudinaryConfig) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	return &CloudinaryUploader{cld: cld}, nil
}

// Upload stores file under folder and resolves to its secure URL.
func (u *CloudinaryUploader) Upload(ctx context.Context, file File, folder string) (string, error) {
	res, err := u.cld.Upload.Upload(ctx, bytes.NewReader(file.Data), uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload returned no URL")
	}
	return res.SecureURL, nil
}
