package repositories

import (
	"context"
	"fmt"

	"shopadmin/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMImageRepository is a GORM implementation of ImageRepository.
type GORMImageRepository struct {
	db *gorm.DB
}

// NewGORMImageRepository creates a new instance of GORMImageRepository.
func NewGORMImageRepository(db *gorm.DB) *GORMImageRepository {
	return &GORMImageRepository{db: db}
}

func (r *GORMImageRepository) GetAll(ctx context.Context) ([]models.ImageSet, error) {
	sets := []models.ImageSet{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&sets).Error; err != nil {
		return nil, fmt.Errorf("failed to get image sets: %w", err)
	}
	return sets, nil
}

// Create stores set. The write honours ctx, so a deadline aborts it.
func (r *GORMImageRepository) Create(ctx context.Context, set *models.ImageSet) error {
	if set.ID == "" {
		set.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(set).Error; err != nil {
		return fmt.Errorf("failed to save images: %w", err)
	}
	return nil
}
