package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"joyeria-api/internal/domain"
	"joyeria-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProposalTTL bounds how long a checkout confirmation stays valid.
const ProposalTTL = 10 * time.Minute

// CheckoutRequest carries the payment form fields. The card number is only
// checked for presence; no payment network is ever contacted.
type CheckoutRequest struct {
	PayerName      string
	CardNumber     string
	DeliveryMethod domain.DeliveryMethod
	Address        string
}

// Proposal is the human-in-the-loop confirmation step: a summary of what
// would be ordered, identified by a single-use token. The order snapshot is
// NOT taken here; it is built from the live cart at confirm time.
type Proposal struct {
	ID             string
	UserID         string
	Total          float64
	DeliveryMethod domain.DeliveryMethod
	Address        string
	CreatedAt      time.Time
}

// CheckoutService turns a cart plus delivery choice into a persisted order.
// Submission is two-phase (propose, then confirm) so a repeated tap cannot
// place the same order twice.
type CheckoutService interface {
	Propose(ctx context.Context, userID string, req CheckoutRequest) (*Proposal, error)
	Confirm(ctx context.Context, userID, proposalID string) (*domain.Order, error)
}

type checkoutService struct {
	carts  CartService
	orders repository.OrderRepository
	logger *zap.Logger
	now    func() time.Time

	mu        sync.Mutex
	proposals map[string]*Proposal
	inFlight  map[string]bool
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(carts CartService, orders repository.OrderRepository, logger *zap.Logger) CheckoutService {
	return &checkoutService{
		carts:     carts,
		orders:    orders,
		logger:    logger,
		now:       time.Now,
		proposals: make(map[string]*Proposal),
		inFlight:  make(map[string]bool),
	}
}

// sweepExpiredLocked drops proposals past their TTL. Abandoned checkouts would
// otherwise accumulate for the life of the process. Caller holds s.mu.
func (s *checkoutService) sweepExpiredLocked() {
	for id, proposal := range s.proposals {
		if s.now().Sub(proposal.CreatedAt) > ProposalTTL {
			delete(s.proposals, id)
		}
	}
}

// Propose validates the checkout inputs and returns a confirmation summary.
// Preconditions are checked in a fixed order, short-circuiting on the first
// failure, and nothing is persisted until the proposal is confirmed.
func (s *checkoutService) Propose(ctx context.Context, userID string, req CheckoutRequest) (*Proposal, error) {
	if strings.TrimSpace(req.PayerName) == "" {
		return nil, &ValidationError{Field: "payer_name", Reason: "must not be blank"}
	}
	if strings.TrimSpace(req.CardNumber) == "" {
		return nil, &ValidationError{Field: "card_number", Reason: "must not be blank"}
	}
	if !req.DeliveryMethod.Valid() {
		return nil, &ValidationError{Field: "delivery_method", Reason: "must be in_store or delivery"}
	}
	if req.DeliveryMethod == domain.DeliveryCourier && strings.TrimSpace(req.Address) == "" {
		return nil, &ValidationError{Field: "address", Reason: "required for delivery orders"}
	}
	if userID == "" {
		return nil, ErrAuthRequired
	}

	address := domain.PickupAddress
	if req.DeliveryMethod == domain.DeliveryCourier {
		address = strings.TrimSpace(req.Address)
	}

	proposal := &Proposal{
		ID:             uuid.NewString(),
		UserID:         userID,
		Total:          s.carts.Total(userID),
		DeliveryMethod: req.DeliveryMethod,
		Address:        address,
		CreatedAt:      s.now(),
	}

	s.mu.Lock()
	s.sweepExpiredLocked()
	s.proposals[proposal.ID] = proposal
	s.mu.Unlock()

	s.logger.Info("Checkout proposed",
		zap.String("user_id", userID),
		zap.String("proposal_id", proposal.ID),
		zap.Float64("total", proposal.Total),
		zap.String("delivery_method", string(proposal.DeliveryMethod)),
	)

	return proposal, nil
}

// Confirm commits a previously proposed checkout. The order snapshot is taken
// from the current cart, so a retry after a failed attempt picks up whatever
// the cart holds now. At most one confirmation per identity runs at a time;
// concurrent attempts are rejected without creating a second order.
func (s *checkoutService) Confirm(ctx context.Context, userID, proposalID string) (*domain.Order, error) {
	s.mu.Lock()
	proposal, ok := s.proposals[proposalID]
	if ok && s.now().Sub(proposal.CreatedAt) > ProposalTTL {
		delete(s.proposals, proposalID)
		ok = false
	}
	if !ok || proposal.UserID != userID {
		s.mu.Unlock()
		return nil, ErrProposalNotFound
	}
	if s.inFlight[userID] {
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	s.inFlight[userID] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, userID)
		s.mu.Unlock()
	}()

	items, orderTotal := s.carts.Snapshot(userID)

	order := &domain.Order{
		ID:             uuid.NewString(),
		UserID:         userID,
		Items:          items,
		Total:          orderTotal,
		DeliveryMethod: proposal.DeliveryMethod,
		Address:        proposal.Address,
		Rating:         0,
		CreatedAt:      s.now(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		// Cart and proposal stay untouched so the user can retry; the retry
		// re-snapshots the cart.
		s.logger.Error("Order submission failed",
			zap.String("user_id", userID),
			zap.String("proposal_id", proposalID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}

	s.carts.Clear(userID)

	s.mu.Lock()
	delete(s.proposals, proposalID)
	s.mu.Unlock()

	s.logger.Info("Order submitted",
		zap.String("user_id", userID),
		zap.String("order_id", order.ID),
		zap.Float64("total", order.Total),
	)

	return order, nil
}
