package ports

import "context"

// TransactionFactory creates a fresh Transaction for each command.
type TransactionFactory interface {
	Create() Transaction
}

// Transaction buffers write items and commits them atomically.
//
// Execute commits every buffered item in one store transaction or none of
// them, and empties the buffer whatever the outcome. Failures are typed:
//   - errs.ConditionalCheckFailedError when a guarded item did not hold or an
//     insert collided with an existing key
//   - errs.StoreUnavailableError for transient store failures
//   - errs.TransactionTooLargeError when the buffer exceeds the item limit,
//     returned before the store is contacted
//
// A Transaction is not safe for concurrent use.
type Transaction interface {
	AddItem(item TransactionItem)
	AddItems(items ...TransactionItem)

	// Len returns the number of buffered items.
	Len() int

	Execute(ctx context.Context) error
}
