package repositories

import (
	"context"
	"errors"
	"fmt"

	"shopadmin/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTestRepository is a GORM implementation of TestRepository.
type GORMTestRepository struct {
	db *gorm.DB
}

// NewGORMTestRepository creates a new instance of GORMTestRepository.
func NewGORMTestRepository(db *gorm.DB) *GORMTestRepository {
	return &GORMTestRepository{db: db}
}

func (r *GORMTestRepository) GetAll(ctx context.Context) ([]models.TestRecord, error) {
	records := []models.TestRecord{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get all tests: %w", err)
	}
	return records, nil
}

func (r *GORMTestRepository) GetByID(ctx context.Context, id string) (*models.TestRecord, error) {
	return r.find(r.db.WithContext(ctx), id)
}

func (r *GORMTestRepository) Create(ctx context.Context, record *models.TestRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Fields == nil {
		record.Fields = map[string]interface{}{}
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create test: %w", err)
	}
	return nil
}

func (r *GORMTestRepository) Merge(ctx context.Context, id string, patch map[string]interface{}) (*models.TestRecord, error) {
	var merged *models.TestRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := r.find(tx, id)
		if err != nil {
			return err
		}
		record.Merge(patch)
		if err := tx.Save(record).Error; err != nil {
			return fmt.Errorf("failed to update test %s: %w", id, err)
		}
		merged = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (r *GORMTestRepository) Delete(ctx context.Context, id string) (*models.TestRecord, error) {
	var deleted *models.TestRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := r.find(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.TestRecord{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete test %s: %w", id, err)
		}
		deleted = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (r *GORMTestRepository) find(db *gorm.DB, id string) (*models.TestRecord, error) {
	var record models.TestRecord
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("test with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get test by ID %s: %w", id, err)
	}
	return &record, nil
}
