// Package kernel provides the shared value objects of the marketplace domain.
//
// The package includes:
//   - UUID: identifiers, time ordered (v7) or derived deterministically (v5)
//   - Money: exact decimal amounts with an ISO 4217 currency
//   - AddWorkdays: the business day calendar used for order deadlines
//
// All values are immutable and safe for concurrent use.
package kernel
