package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetQuotationsForProjectQueryIsNotConstructed = errors.New(
	"GetQuotationsForProjectQuery must be created via NewGetQuotationsForProjectQuery constructor",
)

// GetQuotationsForProjectQuery lists the quotations of a project owned by
// clientID.
type GetQuotationsForProjectQuery struct {
	clientID  kernel.UUID
	projectID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetQuotationsForProjectQuery(clientID, projectID kernel.UUID) (GetQuotationsForProjectQuery, error) {
	if err := errors.Join(clientID.Validate(), projectID.Validate()); err != nil {
		return GetQuotationsForProjectQuery{}, err
	}

	return GetQuotationsForProjectQuery{
		clientID:  clientID,
		projectID: projectID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetQuotationsForProjectQuery) Validate() error {
	return q.guard.Validate(ErrGetQuotationsForProjectQueryIsNotConstructed)
}

func (q GetQuotationsForProjectQuery) ClientID() kernel.UUID  { return q.clientID }
func (q GetQuotationsForProjectQuery) ProjectID() kernel.UUID { return q.projectID }
