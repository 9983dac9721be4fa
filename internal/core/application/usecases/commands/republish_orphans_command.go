package commands

import (
	"errors"
	"time"

	"ordermgmt/internal/pkg/guard"
)

var (
	ErrRepublishOrphansCommandIsNotConstructed = errors.New(
		"RepublishOrphansCommand must be created via NewRepublishOrphansCommand constructor",
	)
	ErrMinAgeIsInvalid = errors.New("min age must be greater than 0")
)

// RepublishOrphansCommand represents a reconciliation sweep over orders stuck
// in Submitted status. The min age keeps the sweep away from orders whose
// first publish is still in flight.
type RepublishOrphansCommand struct { //nolint:recvcheck //using for validation
	minAge time.Duration

	guard guard.ConstructorGuard
}

// NewRepublishOrphansCommand creates a reconciliation command.
// Only Submitted orders older than minAge are considered orphaned.
func NewRepublishOrphansCommand(minAge time.Duration) (RepublishOrphansCommand, error) {
	if minAge <= 0 {
		return RepublishOrphansCommand{}, ErrMinAgeIsInvalid
	}

	return RepublishOrphansCommand{
		minAge: minAge,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRepublishOrphansCommandIsNotConstructed if validation fails.
func (c RepublishOrphansCommand) Validate() error {
	return c.guard.Validate(ErrRepublishOrphansCommandIsNotConstructed)
}

// MinAge returns the minimum age a Submitted order must have before it is
// treated as orphaned.
func (c RepublishOrphansCommand) MinAge() time.Duration {
	return c.minAge
}
