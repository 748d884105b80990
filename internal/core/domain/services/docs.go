// Package services provides domain services that coordinate several aggregates
// of the quotation workflow.
//
// The package includes:
//   - OrderPlanner: computes the selected subtotal of a quotation and plans the
//     manufacturing orders created when it is paid
//   - QuotesExpired: tells whether a quoted quotation can no longer be paid
package services
