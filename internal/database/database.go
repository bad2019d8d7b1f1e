// Package database owns the connection pool shared by every repository.
// The pool is opened once at startup, handed to the repositories and closed
// on shutdown.
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"shopadmin/internal/config"
	"shopadmin/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Collection names used by the document store.
const (
	ProductsCollection = "products"
	TestsCollection    = "tests"
	ImagesCollection   = "images"
)

// Pool wraps whichever store backs the dashboard. Exactly one of SQL or
// Mongo is set, except for the memory driver where both are nil.
type Pool struct {
	Driver string
	SQL    *gorm.DB
	Mongo  *mongo.Database

	mongoClient *mongo.Client
}

// Open connects to the store selected by cfg.DBDriver.
func Open(ctx context.Context, cfg *config.Config) (*Pool, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.DatabaseDSN), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
		}
		return &Pool{Driver: cfg.DBDriver, SQL: db}, nil
	case config.DriverPostgres:
		db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres database: %w", err)
		}
		return &Pool{Driver: cfg.DBDriver, SQL: db}, nil
	case config.DriverMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		return &Pool{
			Driver:      cfg.DBDriver,
			Mongo:       client.Database(cfg.MongoDatabase),
			mongoClient: client,
		}, nil
	case config.DriverMemory:
		return &Pool{Driver: cfg.DBDriver}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// FromGorm wraps an already opened gorm handle, mostly for tests.
func FromGorm(db *gorm.DB) *Pool {
	return &Pool{Driver: db.Dialector.Name(), SQL: db}
}

func gormConfig() *gorm.Config {
	return &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
}

// Migrate creates tables for the relational drivers and the createdAt
// indexes for the document store.
func (p *Pool) Migrate(ctx context.Context) error {
	switch {
	case p.SQL != nil:
		if err := p.SQL.WithContext(ctx).AutoMigrate(&models.Product{}, &models.TestRecord{}, &models.ImageSet{}); err != nil {
			return fmt.Errorf("failed to auto-migrate database: %w", err)
		}
	case p.Mongo != nil:
		for _, name := range []string{ProductsCollection, ImagesCollection} {
			_, err := p.Mongo.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
				Keys: bson.D{{Key: "createdAt", Value: -1}},
			})
			if err != nil {
				return fmt.Errorf("failed to create index on %s: %w", name, err)
			}
		}
	}
	log.Printf("Database migrated (driver: %s)", p.Driver)
	return nil
}

// Ping checks that the store is reachable.
func (p *Pool) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	switch {
	case p.SQL != nil:
		sqlDB, err := p.SQL.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql handle: %w", err)
		}
		return sqlDB.PingContext(ctx)
	case p.mongoClient != nil:
		return p.mongoClient.Ping(ctx, nil)
	}
	return nil
}

// Close releases the underlying connections.
func (p *Pool) Close(ctx context.Context) error {
	switch {
	case p.SQL != nil:
		sqlDB, err := p.SQL.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql handle: %w", err)
		}
		return sqlDB.Close()
	case p.mongoClient != nil:
		return p.mongoClient.Disconnect(ctx)
	}
	return nil
}
