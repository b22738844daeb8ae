// Package kernel contains shared domain primitives used across aggregates.
//
// It currently provides the UUID value object, a validated wrapper around
// github.com/google/uuid that serves as the identifier type for orders.
// Keeping identifier handling in one place ensures consistent construction,
// validation, and comparison semantics throughout the domain model.
package kernel
