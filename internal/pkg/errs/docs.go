// Package errs provides standardized error types for the marketplace backend.
// Every error type follows the same shape: a sentinel error variable, a struct
// carrying the details, constructors with and without a cause, Error() and
// Unwrap() returning the sentinel so callers classify with errors.Is.
//
// Validation:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError
//
// Lookup:
//   - ObjectNotFoundError
//
// Atomic store writes:
//   - ConditionalCheckFailedError: a guarded write lost against the stored state
//   - StoreUnavailableError: transient infrastructure failure, retryable
//   - TransactionTooLargeError: more items than the atomic write limit, not retryable
package errs
