package service

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired is returned when an operation needs an authenticated
	// identity and none is present. Never silently degraded.
	ErrAuthRequired = errors.New("sign in required")

	// ErrSubmissionInFlight is returned when a checkout confirmation arrives
	// while a previous one for the same identity has not finished yet. The
	// duplicate attempt is a no-op.
	ErrSubmissionInFlight = errors.New("a submission is already in flight")

	// ErrProposalNotFound is returned when a confirmation token is unknown,
	// expired, or belongs to another identity.
	ErrProposalNotFound = errors.New("checkout confirmation not found or expired")
)

// ValidationError marks input rejected before any remote call. The user
// edits the field and resubmits; no retry logic is involved.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PartialFanoutError reports a feedback fan-out that only partially
// succeeded: the order's rating was updated, but comments for the named
// products were not recorded. The primary write is kept.
type PartialFanoutError struct {
	OrderID        string
	FailedProducts []string
}

func (e *PartialFanoutError) Error() string {
	return fmt.Sprintf("rating saved for order %s but comments for %d product(s) were not recorded",
		e.OrderID, len(e.FailedProducts))
}
