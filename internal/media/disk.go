package media

import (
	"context"
	"fmt"
	"log"
	"path"
	"regexp"
	"sync"
	"time"

	"github.com/spf13/afero"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// DiskUploader writes images into a public directory that the server serves
// under Prefix. It is an alternative to a remote media host, not a fallback.
type DiskUploader struct {
	fs     afero.Fs
	prefix string
	now    func() time.Time

	mu sync.Mutex
}

// NewDiskUploader stores files at the root of fs and returns URLs starting
// with prefix.
func NewDiskUploader(fs afero.Fs, prefix string) *DiskUploader {
	return &DiskUploader{fs: fs, prefix: prefix, now: time.Now}
}

// NewOSDiskUploader roots the uploader at dir on the local filesystem.
func NewOSDiskUploader(dir, prefix string) (*DiskUploader, error) {
	if err := afero.NewOsFs().MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create public directory %s: %w", dir, err)
	}
	return NewDiskUploader(afero.NewBasePathFs(afero.NewOsFs(), dir), prefix), nil
}

// SanitizeFilename replaces every character outside [A-Za-z0-9._-] with an
// underscore.
func SanitizeFilename(name string) string {
	name = path.Base(name)
	if name == "." || name == "/" {
		name = "image"
	}
	return unsafeName.ReplaceAllString(name, "_")
}

// Upload writes file as <unix millis>-<sanitized name> and returns the
// relative path. The folder is ignored: every file lands in one directory.
func (u *DiskUploader) Upload(ctx context.Context, file File, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := u.reserve(SanitizeFilename(file.Name))
	if err != nil {
		return "", err
	}
	if err := afero.WriteFile(u.fs, name, file.Data, 0o644); err != nil {
		if rmErr := u.fs.Remove(name); rmErr != nil {
			log.Printf("Error removing placeholder %s: %v", name, rmErr)
		}
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path.Join(u.prefix, name), nil
}

// reserve picks a name that is not taken yet, moving the timestamp forward
// when two files with the same name arrive within one millisecond.
func (u *DiskUploader) reserve(base string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	stamp := u.now().UnixMilli()
	for {
		name := fmt.Sprintf("%d-%s", stamp, base)
		exists, err := afero.Exists(u.fs, name)
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", name, err)
		}
		if !exists {
			// Create the file now so a concurrent upload sees the name as taken.
			if err := afero.WriteFile(u.fs, name, nil, 0o644); err != nil {
				return "", fmt.Errorf("failed to create %s: %w", name, err)
			}
			return name, nil
		}
		stamp++
	}
}
