package repositories

import (
	"context"
	"fmt"
	"time"

	"shopadmin/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type imageDocument struct {
	ID        string    `bson:"_id"`
	Images    []string  `bson:"images"`
	CreatedAt time.Time `bson:"createdAt"`
}

// MongoImageRepository stores image sets in a MongoDB collection.
type MongoImageRepository struct {
	coll *mongo.Collection
}

// NewMongoImageRepository creates a repository over coll.
func NewMongoImageRepository(coll *mongo.Collection) *MongoImageRepository {
	return &MongoImageRepository{coll: coll}
}

func (r *MongoImageRepository) GetAll(ctx context.Context) ([]models.ImageSet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get image sets: %w", err)
	}
	var docs []imageDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode image sets: %w", err)
	}
	sets := make([]models.ImageSet, 0, len(docs))
	for _, d := range docs {
		sets = append(sets, models.ImageSet{ID: d.ID, Images: d.Images, CreatedAt: d.CreatedAt})
	}
	return sets, nil
}

func (r *MongoImageRepository) Create(ctx context.Context, set *models.ImageSet) error {
	if set.ID == "" {
		set.ID = uuid.New().String()
	}
	if set.CreatedAt.IsZero() {
		set.CreatedAt = time.Now().UTC()
	}
	doc := imageDocument{ID: set.ID, Images: append([]string{}, set.Images...), CreatedAt: set.CreatedAt}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to save images: %w", err)
	}
	return nil
}
