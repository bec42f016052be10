package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nee-commerce/backend/internal/models"
)

// BusinessRepository is the read/write surface for the catalog. The sync
// resolver only ever calls List; the rest serves the admin and seed paths.
type BusinessRepository interface {
	List(ctx context.Context) ([]models.Business, error)
	GetBySlug(ctx context.Context, slug string) (*models.Business, error)
	Upsert(ctx context.Context, business *models.Business) error
	Delete(ctx context.Context, id string) error
}

type businessRepo struct {
	collection *mongo.Collection
}

func NewBusinessRepository(db *DB) BusinessRepository {
	return &businessRepo{
		collection: db.Database.Collection("businesses"),
	}
}

// List returns every business with its embedded products in insertion
// order. The catalog is small enough that lookups scan it per request.
func (r *businessRepo) List(ctx context.Context) ([]models.Business, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer cursor.Close(ctx)

	var businesses []models.Business
	if err := cursor.All(ctx, &businesses); err != nil {
		return nil, fmt.Errorf("decode businesses: %w", err)
	}
	return businesses, nil
}

func (r *businessRepo) GetBySlug(ctx context.Context, slug string) (*models.Business, error) {
	var business models.Business
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&business)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get business by slug: %w", err)
	}
	return &business, nil
}

func (r *businessRepo) Upsert(ctx context.Context, business *models.Business) error {
	if business.ID == "" {
		business.ID = business.Slug
	}
	filter := bson.M{"_id": business.ID}
	update := bson.M{"$set": business}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert business: %w", err)
	}
	return nil
}

func (r *businessRepo) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete business: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}
