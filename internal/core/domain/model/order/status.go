package order

import (
	"fmt"

	"orderservice/internal/pkg/errs"
)

// Status represents the lifecycle state of a purchase order.
// It implements a small state machine with defined transitions:
//
//	Accepted ──> Dispatched
//	Rejected               (terminal from creation)
//
// An order is born Accepted or Rejected depending on catalog availability.
// Rejected is terminal: no code path transitions out of it. Dispatched is
// terminal as well, but re-applying the dispatch transition is a no-op so
// redelivered dispatch notifications stay harmless.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Accepted means the book was available in the catalog and the order
	// awaits fulfillment.
	Accepted

	// Rejected means the book could not be resolved in the catalog.
	// Terminal.
	Rejected

	// Dispatched means the fulfillment process has shipped the order.
	// Terminal.
	Dispatched
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Accepted:   "ACCEPTED",
		Rejected:   "REJECTED",
		Dispatched: "DISPATCHED",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Accepted:   "ACCEPTED",
		Rejected:   "REJECTED",
		Dispatched: "DISPATCHED",
	}
}

// Validate checks that the Status is one of Accepted, Rejected, or Dispatched.
// Unknown (0) and any other values are invalid. Used when reconstructing
// orders from persistence or transport payloads.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name of the status ("ACCEPTED", "REJECTED",
// "DISPATCHED") or "Unknown" for invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateDispatch checks whether the dispatch transition is allowed from the
// current status without performing it.
//
// Allowed from:
//   - Accepted (the normal transition)
//   - Dispatched (redelivered notification, applied as a no-op)
//
// Not allowed from Rejected or Unknown.
func (s Status) ValidateDispatch() error {
	if s != Accepted && s != Dispatched {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to dispatch", s.String()),
		)
	}
	return nil
}

// ValidateCanHaveBook validates the consistency between order status and the
// presence of book details (name and price).
//
// Accepted and Dispatched orders must carry book details; Rejected orders
// must not.
func (s Status) ValidateCanHaveBook(hasBook bool) error {
	if hasBook && s != Accepted && s != Dispatched {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have book details", s.String()),
		)
	}

	if !hasBook && (s == Accepted || s == Dispatched) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no book details", s.String()),
		)
	}

	return nil
}

// Dispatch transitions the status to Dispatched.
//
// Valid transitions:
//   - Accepted -> Dispatched
//   - Dispatched -> Dispatched (idempotent re-application)
//
// Returns (0, error) when the transition is not allowed, which covers
// Rejected (terminal) and Unknown.
func (s Status) Dispatch() (Status, error) {
	if err := s.ValidateDispatch(); err != nil {
		return 0, err
	}

	return Dispatched, nil
}
