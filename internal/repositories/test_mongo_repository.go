package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopadmin/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type testDocument struct {
	ID        string    `bson:"_id"`
	Fields    bson.M    `bson:"fields"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d testDocument) toModel() *models.TestRecord {
	return &models.TestRecord{
		ID:        d.ID,
		Fields:    models.StripReserved(d.Fields),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// MongoTestRepository stores test records in a MongoDB collection.
type MongoTestRepository struct {
	coll *mongo.Collection
}

// NewMongoTestRepository creates a repository over coll.
func NewMongoTestRepository(coll *mongo.Collection) *MongoTestRepository {
	return &MongoTestRepository{coll: coll}
}

func (r *MongoTestRepository) GetAll(ctx context.Context) ([]models.TestRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get all tests: %w", err)
	}
	var docs []testDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode tests: %w", err)
	}
	records := make([]models.TestRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, *doc.toModel())
	}
	return records, nil
}

func (r *MongoTestRepository) GetByID(ctx context.Context, id string) (*models.TestRecord, error) {
	var doc testDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("test with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get test by ID %s: %w", id, err)
	}
	return doc.toModel(), nil
}

func (r *MongoTestRepository) Create(ctx context.Context, record *models.TestRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	record.CreatedAt, record.UpdatedAt = now, now
	if record.Fields == nil {
		record.Fields = map[string]interface{}{}
	}

	doc := testDocument{
		ID:        record.ID,
		Fields:    bson.M(record.Fields),
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create test: %w", err)
	}
	return nil
}

func (r *MongoTestRepository) Merge(ctx context.Context, id string, patch map[string]interface{}) (*models.TestRecord, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range models.StripReserved(patch) {
		set["fields."+k] = v
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc testDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("test with ID %s for update: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to update test %s: %w", id, err)
	}
	return doc.toModel(), nil
}

func (r *MongoTestRepository) Delete(ctx context.Context, id string) (*models.TestRecord, error) {
	var doc testDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("test with ID %s for deletion: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to delete test %s: %w", id, err)
	}
	return doc.toModel(), nil
}
