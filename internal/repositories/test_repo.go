package repositories

import (
	"context"

	"shopadmin/internal/models"
)

// TestRepository defines data access for scratch test records.
type TestRepository interface {
	GetAll(ctx context.Context) ([]models.TestRecord, error)
	GetByID(ctx context.Context, id string) (*models.TestRecord, error)
	Create(ctx context.Context, record *models.TestRecord) error
	// Merge applies a shallow update and returns the merged record.
	Merge(ctx context.Context, id string, patch map[string]interface{}) (*models.TestRecord, error)
	// Delete removes the record and returns what was removed.
	Delete(ctx context.Context, id string) (*models.TestRecord, error)
}
