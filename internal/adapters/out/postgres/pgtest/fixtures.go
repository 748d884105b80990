package pgtest

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/core/domain/model/project"
	"marketplace/internal/core/domain/model/quotation"

	"github.com/stretchr/testify/require"
)

// Now is a fixed Friday morning used by fixtures.
var Now = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

// NewProject returns an unlocked project.
func NewProject(t testing.TB) *project.Project {
	t.Helper()
	p, err := project.NewProject(kernel.NewUUID(), "Gearbox", Now)
	require.NoError(t, err)
	return p
}

// NewQuotation returns a Draft quotation of projectID.
func NewQuotation(t testing.TB, projectID kernel.UUID) *quotation.Quotation {
	t.Helper()
	q, err := quotation.NewQuotation(projectID, Now)
	require.NoError(t, err)
	return q
}

// USD parses a USD amount.
func USD(t testing.TB, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.ParseMoney(amount, "USD")
	require.NoError(t, err)
	return m
}

// NewPart returns a part of q with one quote per (amount, lead time) pair.
func NewPart(t testing.TB, q *quotation.Quotation, options ...PriceOption) *part.Part {
	t.Helper()
	file, err := part.NewFile("part.step", "models/"+kernel.NewUUID().String()+".step")
	require.NoError(t, err)
	p, err := part.NewPart(kernel.NewUUID(), q.ProjectID(), q.ID(), file, Now)
	require.NoError(t, err)

	for _, o := range options {
		option, err := part.NewPriceOption(USD(t, o.Amount), o.LeadTimeDays)
		require.NoError(t, err)
		_, err = p.AttachQuote(option, Now)
		require.NoError(t, err)
	}
	return p
}

// PriceOption is a fixture shorthand for part.PriceOption.
type PriceOption struct {
	Amount       string
	LeadTimeDays int
}
