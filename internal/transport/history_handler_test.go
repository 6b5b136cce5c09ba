package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"joyeria-api/internal/domain"
	"joyeria-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// newTestRouter mounts the handler's routes with a pass-through auth
// middleware so URL parameters resolve as they would in production.
func newTestRouter(h *HistoryHandler) http.Handler {
	r := chi.NewRouter()
	passthrough := func(next http.Handler) http.Handler { return next }
	h.RegisterRoutes(r, passthrough)
	return r
}

type stubHistoryService struct {
	listOrders  func(ctx context.Context, userID string) (*service.History, error)
	setFeedback func(ctx context.Context, userID, orderID string, rating int, comment string) error
}

func (s *stubHistoryService) ListOrders(ctx context.Context, userID string) (*service.History, error) {
	return s.listOrders(ctx, userID)
}

func (s *stubHistoryService) SetFeedback(ctx context.Context, userID, orderID string, rating int, comment string) error {
	return s.setFeedback(ctx, userID, orderID, rating, comment)
}

func TestHistoryHandler_List(t *testing.T) {
	history := &stubHistoryService{
		listOrders: func(ctx context.Context, userID string) (*service.History, error) {
			return &service.History{
				Orders: []*domain.Order{
					{
						ID:             "order-1",
						UserID:         userID,
						Items:          []domain.OrderItem{{ProductID: "p1", Name: "Pulsera", Price: 150}},
						Total:          150,
						DeliveryMethod: domain.DeliveryCourier,
						Address:        "Av. Siempre Viva 123",
						Rating:         4,
						CreatedAt:      time.Now(),
					},
				},
				AverageRating: 4.0,
			}, nil
		},
	}
	handler := NewHistoryHandler(history, zap.NewNop())

	req := authedRequest(http.MethodGet, "/api/orders", "user-1", nil)
	w := httptest.NewRecorder()
	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var response HistoryResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if len(response.Orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(response.Orders))
	}
	if response.Orders[0].DisplayTotal != "S/150.00" {
		t.Fatalf("expected display total S/150.00, got %q", response.Orders[0].DisplayTotal)
	}
	if response.AverageRating != 4.0 {
		t.Fatalf("expected average rating 4.0, got %v", response.AverageRating)
	}
}

func TestHistoryHandler_SetFeedback(t *testing.T) {
	var gotOrderID string
	var gotRating int
	history := &stubHistoryService{
		setFeedback: func(ctx context.Context, userID, orderID string, rating int, comment string) error {
			gotOrderID = orderID
			gotRating = rating
			return nil
		},
	}
	handler := NewHistoryHandler(history, zap.NewNop())

	router := newTestRouter(handler)

	body, _ := json.Marshal(FeedbackRequest{Rating: 5, Comment: "precioso"})
	req := authedRequest(http.MethodPatch, "/api/orders/order-1/feedback", "user-1", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotOrderID != "order-1" || gotRating != 5 {
		t.Fatalf("feedback not passed through: orderID=%q rating=%d", gotOrderID, gotRating)
	}
}

func TestHistoryHandler_SetFeedback_CommentOnly(t *testing.T) {
	var gotRating int
	var gotComment string
	history := &stubHistoryService{
		setFeedback: func(ctx context.Context, userID, orderID string, rating int, comment string) error {
			gotRating = rating
			gotComment = comment
			return nil
		},
	}
	handler := NewHistoryHandler(history, zap.NewNop())

	router := newTestRouter(handler)

	// Rating omitted: the payload passes validation and the zero value
	// reaches the service, which keeps the order's current rating
	req := authedRequest(http.MethodPatch, "/api/orders/order-1/feedback", "user-1", []byte(`{"comment":"muy bonito"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotRating != 0 || gotComment != "muy bonito" {
		t.Fatalf("comment-only payload not passed through: rating=%d comment=%q", gotRating, gotComment)
	}
}

func TestHistoryHandler_SetFeedback_RejectsOutOfRangeRating(t *testing.T) {
	history := &stubHistoryService{
		setFeedback: func(ctx context.Context, userID, orderID string, rating int, comment string) error {
			t.Fatalf("service must not be called for invalid payload")
			return nil
		},
	}
	handler := NewHistoryHandler(history, zap.NewNop())

	for _, rating := range []int{-1, 6} {
		body, _ := json.Marshal(FeedbackRequest{Rating: rating})
		req := authedRequest(http.MethodPatch, "/api/orders/order-1/feedback", "user-1", body)
		w := httptest.NewRecorder()
		handler.SetFeedback(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for rating %d, got %d", rating, w.Code)
		}
	}
}

func TestHistoryHandler_SetFeedback_PartialFanout(t *testing.T) {
	history := &stubHistoryService{
		setFeedback: func(ctx context.Context, userID, orderID string, rating int, comment string) error {
			return &service.PartialFanoutError{OrderID: orderID, FailedProducts: []string{"p2"}}
		},
	}
	handler := NewHistoryHandler(history, zap.NewNop())

	router := newTestRouter(handler)

	body, _ := json.Marshal(FeedbackRequest{Rating: 4})
	req := authedRequest(http.MethodPatch, "/api/orders/order-1/feedback", "user-1", body)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}

	var response struct {
		Error struct {
			Code    string                 `json:"code"`
			Details map[string]interface{} `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if response.Error.Code != "partial_fanout" {
		t.Fatalf("expected partial_fanout code, got %q", response.Error.Code)
	}
}
