// Package queries contains read-only operations over the order store.
// Query handlers bypass the domain model and read directly from the database
// with raw SQL, returning flat response structs shaped for presentation.
package queries
