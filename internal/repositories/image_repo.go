package repositories

import (
	"context"

	"shopadmin/internal/models"
)

// ImageRepository stores the URL lists of standalone uploads.
type ImageRepository interface {
	GetAll(ctx context.Context) ([]models.ImageSet, error)
	Create(ctx context.Context, set *models.ImageSet) error
}
