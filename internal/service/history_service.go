package service

import (
	"context"
	"fmt"
	"time"

	"joyeria-api/internal/domain"
	"joyeria-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// History bundles an identity's orders with their average rating.
type History struct {
	Orders        []*domain.Order
	AverageRating float64
}

// HistoryService serves the purchase history screen: past orders plus the
// rating/comment mutations made from it.
type HistoryService interface {
	ListOrders(ctx context.Context, userID string) (*History, error)
	SetFeedback(ctx context.Context, userID, orderID string, rating int, comment string) error
}

type historyService struct {
	orders   repository.OrderRepository
	comments repository.CommentRepository
	logger   *zap.Logger
}

// NewHistoryService creates a new instance of HistoryService
func NewHistoryService(orders repository.OrderRepository, comments repository.CommentRepository, logger *zap.Logger) HistoryService {
	return &historyService{
		orders:   orders,
		comments: comments,
		logger:   logger,
	}
}

// ListOrders retrieves the identity's orders, newest first, together with the
// customer's average rating over the rated ones.
func (s *historyService) ListOrders(ctx context.Context, userID string) (*History, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchase history: %w", err)
	}

	ratings := make([]int, 0, len(orders))
	for _, order := range orders {
		ratings = append(ratings, order.Rating)
	}

	return &History{
		Orders:        orders,
		AverageRating: AverageRating(ratings),
	}, nil
}

// SetFeedback stores a rating (1-5) and optional comment on an order, then
// fans out one Comment record per line item so the product detail screens can
// aggregate ratings. A rating of zero means "keep the current one", so the
// comment can be updated on its own; the fan-out is skipped while the order
// stays unrated. The fan-out is at-least-once with no rollback: when the
// order update succeeds but some comments fail, the rating stands and the
// partial failure is reported as a PartialFanoutError.
func (s *historyService) SetFeedback(ctx context.Context, userID, orderID string, rating int, comment string) error {
	if rating < 0 || rating > 5 {
		return &ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}
	if userID == "" {
		return ErrAuthRequired
	}

	order, err := s.orders.FindByUserAndID(ctx, userID, orderID)
	if err != nil {
		return err
	}

	if rating == 0 {
		rating = order.Rating
	}

	if err := s.orders.UpdateFeedback(ctx, userID, orderID, rating, comment); err != nil {
		return err
	}

	if rating == 0 {
		s.logger.Info("Order comment recorded",
			zap.String("user_id", userID),
			zap.String("order_id", orderID),
		)
		return nil
	}

	now := time.Now()
	var failed []string
	for _, item := range order.Items {
		record := &domain.Comment{
			ID:         uuid.NewString(),
			CustomerID: userID,
			ProductID:  item.ProductID,
			Text:       comment,
			Rating:     rating,
			CreatedAt:  now,
		}

		if err := s.comments.Create(ctx, record); err != nil {
			s.logger.Warn("Comment fan-out failed for product",
				zap.String("order_id", orderID),
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			failed = append(failed, item.ProductID)
		}
	}

	if len(failed) > 0 {
		return &PartialFanoutError{OrderID: orderID, FailedProducts: failed}
	}

	s.logger.Info("Order feedback recorded",
		zap.String("user_id", userID),
		zap.String("order_id", orderID),
		zap.Int("rating", rating),
		zap.Int("comments", len(order.Items)),
	)

	return nil
}
