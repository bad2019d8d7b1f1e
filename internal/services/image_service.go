package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"shopadmin/internal/media"
	"shopadmin/internal/models"
	"shopadmin/internal/repositories"
)

var (
	// ErrNoFiles is returned when an upload request carries no images.
	ErrNoFiles = errors.New("no files received")
	// ErrSaveTimeout is returned when storing the URL list exceeds the save
	// deadline. The write is cancelled, not left running.
	ErrSaveTimeout = errors.New("database operation timed out")
)

// DefaultImageSaveTimeout bounds the database write of an upload.
const DefaultImageSaveTimeout = 15 * time.Second

// ImageService uploads standalone image batches and records their URLs.
type ImageService struct {
	repo        repositories.ImageRepository
	uploader    media.Uploader
	folder      string
	saveTimeout time.Duration
	publisher   EventPublisher
}

// NewImageService creates a new ImageService. A non-positive saveTimeout
// means DefaultImageSaveTimeout.
func NewImageService(repo repositories.ImageRepository, uploader media.Uploader, folder string, saveTimeout time.Duration, publisher EventPublisher) *ImageService {
	if saveTimeout <= 0 {
		saveTimeout = DefaultImageSaveTimeout
	}
	return &ImageService{
		repo:        repo,
		uploader:    uploader,
		folder:      folder,
		saveTimeout: saveTimeout,
		publisher:   publisher,
	}
}

// ListImageSets returns previous uploads, newest first.
func (s *ImageService) ListImageSets(ctx context.Context) ([]models.ImageSet, error) {
	return s.repo.GetAll(ctx)
}

// UploadImages uploads every file and stores the URL list as one record.
// A failed upload stores nothing. When the store write fails after the
// uploads succeeded, an orphan event lists the URLs left without a record.
func (s *ImageService) UploadImages(ctx context.Context, files []media.File) (*models.ImageSet, error) {
	files = nonEmpty(files)
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	urls, err := media.UploadAll(ctx, s.uploader, files, s.folder)
	if err != nil {
		return nil, err
	}

	saveCtx, cancel := context.WithTimeout(ctx, s.saveTimeout)
	defer cancel()

	set := &models.ImageSet{Images: urls}
	if err := s.repo.Create(saveCtx, set); err != nil {
		if errors.Is(saveCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s", ErrSaveTimeout, s.saveTimeout)
		}
		log.Printf("Error saving %d uploaded images: %v", len(urls), err)
		publishEvent(s.publisher, models.CatalogEvent{
			Type:   models.EventImagesOrphaned,
			Images: urls,
			Reason: err.Error(),
		})
		return nil, err
	}

	publishEvent(s.publisher, models.CatalogEvent{
		Type:       models.EventImagesUploaded,
		ResourceID: set.ID,
		Images:     set.Images,
	})
	return set, nil
}
