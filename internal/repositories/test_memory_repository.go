package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"shopadmin/internal/models"

	"github.com/google/uuid"
)

// MemoryTestRepository is an in-memory implementation of TestRepository.
type MemoryTestRepository struct {
	records map[string]models.TestRecord
	mu      sync.RWMutex
}

// NewMemoryTestRepository creates a new instance of MemoryTestRepository.
func NewMemoryTestRepository() *MemoryTestRepository {
	return &MemoryTestRepository{records: make(map[string]models.TestRecord)}
}

func (r *MemoryTestRepository) GetAll(_ context.Context) ([]models.TestRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.TestRecord, 0, len(r.records))
	for _, rec := range r.records {
		list = append(list, copyTestRecord(rec))
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (r *MemoryTestRepository) GetByID(_ context.Context, id string) (*models.TestRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("test with ID %s: %w", id, ErrNotFound)
	}
	rec = copyTestRecord(rec)
	return &rec, nil
}

func (r *MemoryTestRepository) Create(_ context.Context, record *models.TestRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	now := time.Now()
	record.CreatedAt, record.UpdatedAt = now, now
	if record.Fields == nil {
		record.Fields = map[string]interface{}{}
	}
	r.records[record.ID] = copyTestRecord(*record)
	return nil
}

func (r *MemoryTestRepository) Merge(_ context.Context, id string, patch map[string]interface{}) (*models.TestRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("test with ID %s for update: %w", id, ErrNotFound)
	}
	rec = copyTestRecord(rec)
	rec.Merge(patch)
	rec.UpdatedAt = time.Now()
	r.records[id] = rec

	out := copyTestRecord(rec)
	return &out, nil
}

func (r *MemoryTestRepository) Delete(_ context.Context, id string) (*models.TestRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("test with ID %s for deletion: %w", id, ErrNotFound)
	}
	delete(r.records, id)
	return &rec, nil
}

func copyTestRecord(rec models.TestRecord) models.TestRecord {
	rec.Fields = models.StripReserved(rec.Fields)
	return rec
}
