// Package errs provides standardized error types for the fulfillment application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: a required input is missing
//   - ValueIsInvalidError: an input is malformed or violates a rule
//   - ValueIsOutOfRangeError: a numeric input lies outside its bounds
//   - ObjectNotFoundError: an order, entitlement or catalog entry is absent
//   - NotEntitledError: a service is recorded against an order that never bought it
//   - StoreError: the ledger store failed (connectivity, conflict, constraint)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel so errors.Is classifies it
//
// The first three form the validation family; callers map each family to a
// transport status without inspecting messages.
package errs
