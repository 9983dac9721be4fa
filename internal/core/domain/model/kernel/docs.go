// Package kernel provides shared value objects for the order management domain.
//
// The package currently contains:
//   - UUID: an immutable identifier value object wrapping github.com/google/uuid
//
// Value objects in this package are constructed through factory functions that
// validate their input, so a successfully created instance is always valid.
// Zero values are detectable via Validate and rejected at domain boundaries.
package kernel
