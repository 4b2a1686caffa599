package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel unwrapped by InvalidTransitionError.
// Use errors.Is(err, ErrInvalidTransition) to classify rejected transitions.
var ErrInvalidTransition = errors.New("invalid status transition")

// InvalidTransitionError reports a status transition rejected by the
// transition table. The order is left unmodified when it is returned.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// NewInvalidTransitionError creates an InvalidTransitionError for the pair.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

// Status represents the lifecycle state of an order.
// It implements a state machine with a closed transition table:
//
//	Pending ──┬──> Preparing ──> Assigned ──> OnTheWay ──> Delivered
//	          │        ^
//	          │        │
//	          │    Accepted
//	          └──> Cancelled
//
// Accept is deliberately legal from both Pending and Accepted, so a
// double-accept stays idempotent instead of failing. Delivered and
// Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned at creation, before the
	// restaurant has reacted to the order.
	Pending

	// Accepted indicates the restaurant acknowledged the order. No
	// transition targets it; it only occurs as a restored source state
	// and still accepts the same operations as Pending.
	Accepted

	// Preparing indicates the restaurant is preparing the order.
	Preparing

	// Assigned indicates a courier has been assigned. Orders in this
	// status always carry a courier ID.
	Assigned

	// OnTheWay indicates the courier picked up the order and is delivering.
	OnTheWay

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled before preparation. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Accepted:  "Accepted",
		Preparing: "Preparing",
		Assigned:  "Assigned",
		OnTheWay:  "OnTheWay",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Accepted:  "Accepted",
		Preparing: "Preparing",
		Assigned:  "Assigned",
		OnTheWay:  "OnTheWay",
		Delivered: "Delivered",
		Cancelled: "Cancelled",
	}
}

// allowedTransitions is the closed transition table. Requests not listed
// here are illegal; the table is consulted through CanTransitionTo and is
// never bypassed by the aggregate.
func allowedTransitions() map[Status]map[Status]bool {
	return map[Status]map[Status]bool{
		Pending:   {Preparing: true, Cancelled: true},
		Accepted:  {Preparing: true},
		Preparing: {Assigned: true},
		Assigned:  {OnTheWay: true},
		OnTheWay:  {Delivered: true},
		Delivered: {},
		Cancelled: {},
	}
}

// Validate checks if the Status value is a member of the enumeration.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StatusFromString parses the human-readable name back into a Status.
// Used at the persistence and HTTP boundaries; the transition table
// itself is always keyed on the enumeration.
func StatusFromString(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", name))
}

// CanTransitionTo reports whether the transition from s to target is legal.
// Pure and total: any pair outside the enumeration yields false.
func (s Status) CanTransitionTo(target Status) bool {
	return allowedTransitions()[s][target]
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// TransitionTo validates the transition and returns the target status.
//
// Returns:
//   - (target, nil) when the transition table allows the pair
//   - (0, *InvalidTransitionError) otherwise
//
// This method is used by Order.ChangeStatus and Order.Assign to enforce
// the table; it never mutates anything.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return 0, NewInvalidTransitionError(s, target)
	}

	return target, nil
}
