package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"shopadmin/internal/models"

	"github.com/google/uuid"
)

// MemoryImageRepository is an in-memory implementation of ImageRepository.
type MemoryImageRepository struct {
	sets []models.ImageSet
	mu   sync.RWMutex
}

// NewMemoryImageRepository creates a new instance of MemoryImageRepository.
func NewMemoryImageRepository() *MemoryImageRepository {
	return &MemoryImageRepository{}
}

func (r *MemoryImageRepository) GetAll(_ context.Context) ([]models.ImageSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ImageSet, len(r.sets))
	copy(out, r.sets)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryImageRepository) Create(ctx context.Context, set *models.ImageSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if set.ID == "" {
		set.ID = uuid.New().String()
	}
	if set.CreatedAt.IsZero() {
		set.CreatedAt = time.Now()
	}
	stored := *set
	stored.Images = append([]string{}, set.Images...)
	r.sets = append(r.sets, stored)
	return nil
}
