// Package order provides the manufacturing Order aggregate. Orders are
// materialized from a paid quotation, one per part, and then follow their own
// fulfilment lifecycle.
//
// The package includes:
//   - Order: the aggregate root carrying payment, deadline, payout and status
//   - Status: a forward-only state machine Created -> InProgress -> Shipped -> Delivered
//
// Key business rules:
//   - The order id is derived from the quotation and part ids, so materializing
//     the same quotation twice yields the same ids
//   - Payment is the selected part quote price, copied at creation
//   - Payout is set by an administrator and is independent of the status
//   - Status advances one step at a time and never moves back
package order
