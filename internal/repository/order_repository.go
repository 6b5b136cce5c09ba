package repository

import (
	"context"
	"errors"
	"fmt"

	"joyeria-api/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for purchase history data access.
// Every read and write is scoped to the owning identity; an order is never
// visible to, or mutable by, anyone else.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	FindByUserAndID(ctx context.Context, userID, orderID string) (*domain.Order, error)
	UpdateFeedback(ctx context.Context, userID, orderID string, rating int, comment string) error
}

type orderRepository struct {
	collection *mongo.Collection
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &orderRepository{collection: db.Collection("orders")}
}

// Create inserts a new order document
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// ListByUser retrieves the identity's orders, newest first
func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []*domain.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

// FindByUserAndID retrieves a single order owned by the identity
func (r *orderRepository) FindByUserAndID(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	order := &domain.Order{}
	err := r.collection.FindOne(ctx, bson.M{"_id": orderID, "user_id": userID}).Decode(order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

// UpdateFeedback overwrites the order's rating and comment. Re-rating
// replaces the previous value, it never accumulates.
func (r *orderRepository) UpdateFeedback(ctx context.Context, userID, orderID string, rating int, comment string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": orderID, "user_id": userID},
		bson.M{"$set": bson.M{"rating": rating, "comment": comment}},
	)
	if err != nil {
		return fmt.Errorf("failed to update order feedback: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}

	return nil
}
