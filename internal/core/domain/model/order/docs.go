// Package order provides domain entities and business logic for order
// management. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, properties, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Orders must have a valid identifier, customer, product, and a positive
//     amount with at most two fractional digits
//   - Order status follows a defined workflow: Submitted -> InFulfillment -> Finalized
//   - Status only advances; it never regresses and never skips a stage
//   - Orders can only be created through NewOrder or restored through RestoreOrder
//
// Enforcing the transition invariant against concurrent writers is the
// responsibility of callers via the repository's conditional update; the
// aggregate enforces it for in-memory transitions.
package order
