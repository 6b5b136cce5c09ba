package service

import (
	"sync"

	"joyeria-api/internal/domain"
)

// CartService owns the per-identity shopping carts. Carts are in-memory and
// session-scoped: they live for the server process and are cleared on an
// explicit empty action or on successful checkout, never shared across
// identities.
type CartService interface {
	Add(userID string, product domain.Product)
	Items(userID string) []domain.Product
	Total(userID string) float64
	Clear(userID string)
	Snapshot(userID string) ([]domain.OrderItem, float64)
}

type cartService struct {
	mu    sync.Mutex
	carts map[string][]domain.Product
}

// NewCartService creates a new instance of CartService
func NewCartService() CartService {
	return &cartService{
		carts: make(map[string][]domain.Product),
	}
}

// Add appends the product to the identity's cart unless an entry with the
// same ID is already present. Idempotent, insertion order preserved.
func (s *cartService) Add(userID string, product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.carts[userID] {
		if item.ID == product.ID {
			return
		}
	}

	s.carts[userID] = append(s.carts[userID], product)
}

// Items returns a copy of the cart contents in insertion order
func (s *cartService) Items(userID string) []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.Product, len(s.carts[userID]))
	copy(items, s.carts[userID])
	return items
}

// Total sums the numeric prices of the cart's items; 0 for an empty cart
func (s *cartService) Total(userID string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return total(s.carts[userID])
}

// Clear empties the identity's cart
func (s *cartService) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
}

// Snapshot returns order line items copied from the current cart plus its
// total, taken atomically so a concurrent Add cannot split the two.
func (s *cartService) Snapshot(userID string) ([]domain.OrderItem, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.carts[userID]
	items := make([]domain.OrderItem, 0, len(cart))
	for _, product := range cart {
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
		})
	}

	return items, total(cart)
}

func total(items []domain.Product) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Price
	}
	return sum
}
