// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: constructor validation, explicit
// handler dependencies, and persistence through the ports package.
package commands
