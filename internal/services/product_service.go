package services

import (
	"context"
	"fmt"

	"shopadmin/internal/media"
	"shopadmin/internal/models"
	"shopadmin/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	uploader  media.Uploader
	folder    string
	publisher EventPublisher
}

// NewProductService creates a new ProductService. Images go to folder on
// the uploader; publisher may be nil.
func NewProductService(repo repositories.ProductRepository, uploader media.Uploader, folder string, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		uploader:  uploader,
		folder:    folder,
		publisher: publisher,
	}
}

// GetAllProducts retrieves all products, newest first.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct uploads files and stores a product whose images are the
// resulting URLs in upload order. Nothing is stored when any upload fails.
func (s *ProductService) CreateProduct(ctx context.Context, input ProductInput, files []media.File) (*models.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	urls, err := media.UploadAll(ctx, s.uploader, nonEmpty(files), s.folder)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:     input.Name,
		Price:    input.Price,
		Quantity: input.Quantity,
		Details:  input.Details,
		Color:    input.Color,
		Images:   urls,
		Status:   models.StatusActive,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	publishEvent(s.publisher, models.CatalogEvent{
		Type:       models.EventProductCreated,
		ResourceID: product.ID,
		Images:     product.Images,
	})
	return product, nil
}

// UpdateProduct overwrites the text fields of a product. When files carries
// new images the stored list is replaced as a whole; otherwise the stored
// images are kept as they are.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input ProductInput, files []media.File) (*models.Product, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	images := existing.Images
	replaced := media.HasNewFiles(files)
	if replaced {
		urls, err := media.UploadAll(ctx, s.uploader, nonEmpty(files), s.folder)
		if err != nil {
			return nil, err
		}
		images = urls
	}

	product := &models.Product{
		ID:        existing.ID,
		Name:      input.Name,
		Price:     input.Price,
		Quantity:  input.Quantity,
		Details:   input.Details,
		Color:     input.Color,
		Images:    images,
		Status:    existing.Status,
		CreatedAt: existing.CreatedAt,
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	event := models.CatalogEvent{Type: models.EventProductUpdated, ResourceID: product.ID}
	if replaced {
		event.Images = product.Images
	}
	publishEvent(s.publisher, event)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}

	// Remote files are not removed here; consumers of the event can.
	publishEvent(s.publisher, models.CatalogEvent{
		Type:       models.EventProductDeleted,
		ResourceID: id,
		Images:     existing.Images,
	})
	return nil
}

// nonEmpty drops zero-sized parts, which browsers send for an empty file
// input.
func nonEmpty(files []media.File) []media.File {
	out := make([]media.File, 0, len(files))
	for _, f := range files {
		if f.Size > 0 {
			out = append(out, f)
		}
	}
	return out
}
