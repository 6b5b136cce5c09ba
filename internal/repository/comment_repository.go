package repository

import (
	"context"
	"fmt"

	"joyeria-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository defines the interface for per-product feedback records.
// Comments live in a flat collection keyed by product ID so the detail screen
// can aggregate ratings without reading anyone's private order history.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByProduct(ctx context.Context, productID string) ([]*domain.Comment, error)
}

type commentRepository struct {
	collection *mongo.Collection
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *mongo.Database) CommentRepository {
	return &commentRepository{collection: db.Collection("comments")}
}

// Create inserts a new comment document
func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if _, err := r.collection.InsertOne(ctx, comment); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListByProduct retrieves the product's comments, newest first
func (r *commentRepository) ListByProduct(ctx context.Context, productID string) ([]*domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"product_id": productID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer cursor.Close(ctx)

	comments := []*domain.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	return comments, nil
}
