package order

import (
	"fmt"

	"ordermgmt/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Submitted ──> InFulfillment ──> Finalized
//
// Status only ever advances along this chain; it never regresses and never
// skips a stage. Finalized is a terminal state.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Submitted is the initial status assigned when an order is created.
	// Orders in this status are waiting for the fulfillment worker.
	Submitted

	// InFulfillment indicates the fulfillment worker has picked up the order
	// and is processing it.
	InFulfillment

	// Finalized indicates fulfillment has completed.
	// This is a final state with no further transitions allowed.
	Finalized
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "Unknown",
		Submitted:     "Submitted",
		InFulfillment: "InFulfillment",
		Finalized:     "Finalized",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Submitted:     "Submitted",
		InFulfillment: "InFulfillment",
		Finalized:     "Finalized",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Submitted, InFulfillment, Finalized.
// Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, broker payloads) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// It implements fmt.Stringer and is safe to call on any Status value,
// including invalid ones, for which it returns "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// HasReached reports whether the status is at or beyond the given stage in
// the ordering Submitted < InFulfillment < Finalized.
//
// The fulfillment worker uses this to recognize duplicate deliveries: an
// order that has already reached InFulfillment must not be re-driven through
// the same transitions.
func (s Status) HasReached(stage Status) bool {
	if s.Validate() != nil || stage.Validate() != nil {
		return false
	}
	return s >= stage
}

// StartFulfillment transitions the status to InFulfillment.
//
// Valid transitions:
//   - Submitted -> InFulfillment
//
// Invalid transitions:
//   - InFulfillment -> InFulfillment (already in progress)
//   - Finalized -> InFulfillment (status never regresses)
//   - Unknown -> InFulfillment (invalid initial state)
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) StartFulfillment() (Status, error) {
	if s != Submitted {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start fulfillment", s.String()),
		)
	}

	return InFulfillment, nil
}

// Finalize transitions the status to Finalized.
//
// Valid transitions:
//   - InFulfillment -> Finalized
//
// Invalid transitions:
//   - Submitted -> Finalized (a stage is never skipped)
//   - Finalized -> Finalized (already finalized)
//   - Unknown -> Finalized (invalid initial state)
//
// Returns (0, error) if the transition is not allowed from the current status.
func (s Status) Finalize() (Status, error) {
	if s != InFulfillment {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to finalize", s.String()),
		)
	}

	return Finalized, nil
}
