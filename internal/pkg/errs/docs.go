// Package errs provides standardized error types for the order service.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package includes error types for the failure categories the service
// deals with:
//   - ValueIsRequiredError: a mandatory value is missing
//   - ValueIsInvalidError: a value violates a validation rule
//   - ValueIsOutOfRangeError: a numeric value falls outside its bounds
//   - ObjectNotFoundError: an object cannot be located by its identifier
//   - VersionIsInvalidError: an optimistic-concurrency conflict on save
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details and an optional Cause
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() to the sentinel
//
// This lets callers classify failures with errors.Is — for example the
// dispatch consumer drops messages whose order lookup unwraps to
// ErrObjectNotFound, while a save that unwraps to ErrVersionIsInvalid
// signals a stale version.
package errs
