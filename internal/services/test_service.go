package services

import (
	"context"

	"shopadmin/internal/models"
	"shopadmin/internal/repositories"
)

// TestService manages schema-less scratch records.
type TestService struct {
	repo repositories.TestRepository
}

// NewTestService creates a new TestService.
func NewTestService(repo repositories.TestRepository) *TestService {
	return &TestService{repo: repo}
}

func (s *TestService) List(ctx context.Context) ([]models.TestRecord, error) {
	return s.repo.GetAll(ctx)
}

func (s *TestService) Get(ctx context.Context, id string) (*models.TestRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores fields as a new record. Reserved keys are ignored.
func (s *TestService) Create(ctx context.Context, fields map[string]interface{}) (*models.TestRecord, error) {
	record := &models.TestRecord{Fields: models.StripReserved(fields)}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Update merges patch into the record's top-level fields.
func (s *TestService) Update(ctx context.Context, id string, patch map[string]interface{}) (*models.TestRecord, error) {
	return s.repo.Merge(ctx, id, patch)
}

func (s *TestService) Delete(ctx context.Context, id string) (*models.TestRecord, error) {
	return s.repo.Delete(ctx, id)
}
