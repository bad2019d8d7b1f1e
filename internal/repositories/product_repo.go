package repositories

import (
	"context"

	"shopadmin/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product, newest first.
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Update overwrites the editable fields of an existing product and
	// refreshes product with the stored state.
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}
