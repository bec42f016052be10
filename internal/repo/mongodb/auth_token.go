package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nee-commerce/backend/internal/models"
)

type AuthTokenRepository interface {
	Create(ctx context.Context, token *models.AuthToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.AuthToken, error)
	RevokeToken(ctx context.Context, tokenHash string) error
	DeleteExpiredTokens(ctx context.Context) error
}

type authTokenRepo struct {
	collection *mongo.Collection
}

func NewAuthTokenRepository(db *DB) AuthTokenRepository {
	return &authTokenRepo{
		collection: db.Database.Collection("auth_tokens"),
	}
}

func (r *authTokenRepo) Create(ctx context.Context, token *models.AuthToken) error {
	token.ID = primitive.NewObjectID()
	token.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, token)
	if err != nil {
		return fmt.Errorf("create auth token: %w", err)
	}
	return nil
}

func (r *authTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.AuthToken, error) {
	var token models.AuthToken
	err := r.collection.FindOne(ctx, bson.M{"token_hash": tokenHash}).Decode(&token)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get auth token: %w", err)
	}
	return &token, nil
}

func (r *authTokenRepo) RevokeToken(ctx context.Context, tokenHash string) error {
	update := bson.M{"$set": bson.M{"is_revoked": true}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"token_hash": tokenHash}, update)
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *authTokenRepo) DeleteExpiredTokens(ctx context.Context) error {
	filter := bson.M{
		"$or": []bson.M{
			{"expires_at": bson.M{"$lt": time.Now()}},
			{"is_revoked": true},
		},
	}

	_, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete expired tokens: %w", err)
	}
	return nil
}
