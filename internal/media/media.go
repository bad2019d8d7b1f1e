// Package media moves uploaded image bytes to wherever they are served
// from: a remote media host or a local public directory.
package media

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"golang.org/x/sync/errgroup"
)

// File is an uploaded image held fully in memory.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Data        []byte
}

// Uploader stores one file and returns the URL it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, file File, folder string) (string, error)
}

// ReadMultipart reads every part into memory, keeping the request order.
func ReadMultipart(headers []*multipart.FileHeader) ([]File, error) {
	files := make([]File, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", h.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", h.Filename, err)
		}
		files = append(files, File{
			Name:        h.Filename,
			ContentType: h.Header.Get("Content-Type"),
			Size:        h.Size,
			Data:        data,
		})
	}
	return files, nil
}

// HasNewFiles reports whether an update carries replacement images. A form
// that submits an empty file input sends one zero-sized part, which does not
// count.
func HasNewFiles(files []File) bool {
	return len(files) > 0 && files[0].Size > 0
}

// UploadAll uploads files concurrently and returns their URLs in input
// order. The first failure cancels the remaining uploads and no URLs are
// returned.
func UploadAll(ctx context.Context, uploader Uploader, files []File, folder string) ([]string, error) {
	urls := make([]string, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			url, err := uploader.Upload(ctx, file, folder)
			if err != nil {
				return fmt.Errorf("failed to upload %s: %w", file.Name, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}
