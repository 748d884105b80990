// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, loading the current
// state through read repositories, domain decisions, then one atomic commit
// through a ports.Transaction whose guards protect against concurrent writers.
package commands

import (
	"time"

	"marketplace/internal/core/ports"
)

type (
	// TransactionFactory creates the atomic commit used by one command.
	TransactionFactory interface {
		Create() ports.Transaction
	}

	// Clock returns the current time. Handlers call it once per command.
	Clock func() time.Time
)

// utcNow reads clock, falling back to time.Now, and returns UTC.
func utcNow(clock Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock().UTC()
}
