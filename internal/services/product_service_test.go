package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"shopadmin/internal/media"
	"shopadmin/internal/models"
	"shopadmin/internal/repositories"
	"shopadmin/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// stubUploader turns a file into a predictable URL, failing for names in failOn.
type stubUploader struct {
	failOn map[string]bool
}

func (u *stubUploader) Upload(_ context.Context, file media.File, folder string) (string, error) {
	if u.failOn[file.Name] {
		return "", fmt.Errorf("upload of %s refused", file.Name)
	}
	return "https://cdn.example.com/" + folder + "/" + file.Name, nil
}

// recordingPublisher keeps published routing keys.
type recordingPublisher struct {
	keys []string
	err  error
}

func (p *recordingPublisher) Publish(routingKey string, _ []byte) error {
	p.keys = append(p.keys, routingKey)
	return p.err
}

func imageFiles(names ...string) []media.File {
	out := make([]media.File, 0, len(names))
	for _, n := range names {
		out = append(out, media.File{Name: n, Size: 4, Data: []byte("data")})
	}
	return out
}

func validInput() services.ProductInput {
	return services.ProductInput{
		Name:     "Linen Shirt",
		Price:    decimal.RequireFromString("2999.99"),
		Quantity: 2,
		Details:  "Breathable",
		Color:    "#336699",
	}
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, &stubUploader{}, "products", nil)

	expectedProducts := []models.Product{
		{ID: "2", Name: "Product B", Price: decimal.NewFromInt(20), Quantity: 50},
		{ID: "1", Name: "Product A", Price: decimal.NewFromInt(10), Quantity: 100},
	}
	mockRepo.On("GetAll", mock.Anything).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, &stubUploader{}, "products", nil)
	ctx := context.Background()

	expectedProduct := &models.Product{ID: "1", Name: "Product A", Price: decimal.NewFromInt(10), Quantity: 100}
	mockRepo.On("GetByID", mock.Anything, "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	mockRepo.On("GetByID", mock.Anything, "99").Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()
	product, err = service.GetProductByID(ctx, "99")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_ImagesInUploadOrder(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := &recordingPublisher{}
	service := services.NewProductService(mockRepo, &stubUploader{}, "products", publisher)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil).Once()

	product, err := service.CreateProduct(context.Background(), validInput(), imageFiles("1.jpg", "2.jpg", "3.jpg"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://cdn.example.com/products/1.jpg",
		"https://cdn.example.com/products/2.jpg",
		"https://cdn.example.com/products/3.jpg",
	}, []string(product.Images))
	assert.Equal(t, "Linen Shirt", product.Name)
	assert.Equal(t, models.StatusActive, product.Status)
	assert.Equal(t, []string{models.EventProductCreated}, publisher.keys)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_WithoutImages(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, &stubUploader{}, "products", nil)

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil).Once()

	// An empty file input arrives as one zero-sized part.
	product, err := service.CreateProduct(context.Background(), validInput(), []media.File{{Name: "", Size: 0}})
	require.NoError(t, err)
	assert.Empty(t, product.Images)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_UploadFailureStoresNothing(t *testing.T) {
	mockRepo := new(MockProductRepository)
	uploader := &stubUploader{failOn: map[string]bool{"2.jpg": true}}
	service := services.NewProductService(mockRepo, uploader, "products", nil)

	product, err := service.CreateProduct(context.Background(), validInput(), imageFiles("1.jpg", "2.jpg", "3.jpg"))
	assert.Error(t, err)
	assert.Nil(t, product)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_CreateProduct_ValidationError(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, &stubUploader{}, "products", nil)

	input := validInput()
	input.Name = ""
	input.Price = decimal.NewFromInt(-1)

	_, err := service.CreateProduct(context.Background(), input, nil)
	var vErr *services.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Fields, "Name")
	assert.Contains(t, vErr.Fields, "Price")
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_CreateProduct_RepositoryError(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := &recordingPublisher{}
	service := services.NewProductService(mockRepo, &stubUploader{}, "products", publisher)

	mockRepo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("database error")).Once()
	_, err := service.CreateProduct(context.Background(), validInput(), nil)
	assert.ErrorContains(t, err, "database error")
	assert.Empty(t, publisher.keys)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_PreservesImagesWithoutNewFiles(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, &stubUploader{}, "products", nil)

	existing := &models.Product{
		ID:     "1",
		Name:   "Old",
		Price:  decimal.NewFromInt(5),
		Images: []string{"https://cdn.example.com/products/old-1.jpg", "https://cdn.example.com/products/old-2.jpg"},
		Status: models.StatusInactive,
	}
	mockRepo.On("GetByID", mock.Anything, "1").Return(existing, nil).Twice()
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil).Twice()

	for _, files := range [][]media.File{nil, {{Name: "", Size: 0}}} {
		product, err := service.UpdateProduct(context.Background(), "1", validInput(), files)
		require.NoError(t, err)
		assert.Equal(t, []string(existing.Images), []string(product.Images))
		assert.Equal(t, "Linen Shirt", product.Name)
		assert.Equal(t, models.StatusInactive, product.Status)
	}
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_ReplacesAllImages(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, &stubUploader{}, "products", nil)

	existing := &models.Product{
		ID:     "1",
		Name:   "Old",
		Price:  decimal.NewFromInt(5),
		Images: []string{"https://cdn.example.com/products/old-1.jpg", "https://cdn.example.com/products/old-2.jpg"},
	}
	mockRepo.On("GetByID", mock.Anything, "1").Return(existing, nil).Once()
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == "1" && len(p.Images) == 1
	})).Return(nil).Once()

	product, err := service.UpdateProduct(context.Background(), "1", validInput(), imageFiles("new.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/products/new.jpg"}, []string(product.Images))
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, &stubUploader{}, "products", nil)

	mockRepo.On("GetByID", mock.Anything, "missing").Return(nil, fmt.Errorf("product with ID missing: %w", repositories.ErrNotFound)).Once()

	_, err := service.UpdateProduct(context.Background(), "missing", validInput(), imageFiles("a.jpg"))
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := &recordingPublisher{err: errors.New("broker down")}
	service := services.NewProductService(mockRepo, &stubUploader{}, "products", publisher)
	ctx := context.Background()

	mockRepo.On("GetByID", mock.Anything, "1").Return(&models.Product{ID: "1", Images: []string{"u"}}, nil).Once()
	mockRepo.On("Delete", mock.Anything, "1").Return(nil).Once()

	// A broker failure does not fail the deletion.
	err := service.DeleteProduct(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, []string{models.EventProductDeleted}, publisher.keys)

	mockRepo.On("GetByID", mock.Anything, "99").Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()
	err = service.DeleteProduct(ctx, "99")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	mockRepo.AssertExpectations(t)
}
