// Package quotation provides the Quotation aggregate and its lifecycle state
// machine.
//
// State transitions:
//
//	Draft ──(parts quoted)──> Quoted ──(payment confirmed)──> Paid
//	  │                        │  ↺ (selections completed)
//	  └──(cancellation)────────┴──(cancellation)──> Cancelled
//
// Paid and Cancelled are terminal: every event on them fails with
// InvalidTransitionError. The aggregate only decides whether a transition is
// allowed; persisting it is done as a conditional status write that expects
// the status observed before the transition, so two concurrent requests on
// the same quotation cannot both succeed.
package quotation
