package services

import (
	"time"

	"marketplace/internal/core/domain/model/part"
)

// QuotesExpired reports whether parts carry at least one quote and every one
// of them has expired at now.
func QuotesExpired(parts []*part.Part, now time.Time) bool {
	seen := false
	for _, p := range parts {
		for _, q := range p.Quotes() {
			if !q.IsExpired(now) {
				return false
			}
			seen = true
		}
	}
	return seen
}
