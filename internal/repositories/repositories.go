package repositories

import (
	"fmt"

	"shopadmin/internal/config"
	"shopadmin/internal/database"
)

// Set bundles the repositories built over one pool.
type Set struct {
	Products ProductRepository
	Tests    TestRepository
	Images   ImageRepository
}

// New picks the repository implementations matching the pool's driver.
func New(pool *database.Pool) (Set, error) {
	switch {
	case pool.SQL != nil:
		return Set{
			Products: NewGORMProductRepository(pool.SQL),
			Tests:    NewGORMTestRepository(pool.SQL),
			Images:   NewGORMImageRepository(pool.SQL),
		}, nil
	case pool.Mongo != nil:
		return Set{
			Products: NewMongoProductRepository(pool.Mongo.Collection(database.ProductsCollection)),
			Tests:    NewMongoTestRepository(pool.Mongo.Collection(database.TestsCollection)),
			Images:   NewMongoImageRepository(pool.Mongo.Collection(database.ImagesCollection)),
		}, nil
	case pool.Driver == config.DriverMemory:
		return NewMemorySet(), nil
	}
	return Set{}, fmt.Errorf("no repositories for driver %q", pool.Driver)
}

// NewMemorySet returns repositories that keep everything in process memory.
func NewMemorySet() Set {
	return Set{
		Products: NewMemoryProductRepository(),
		Tests:    NewMemoryTestRepository(),
		Images:   NewMemoryImageRepository(),
	}
}
