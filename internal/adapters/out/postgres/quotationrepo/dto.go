// Package quotationrepo maps quotation aggregates to the quotations table.
// The status is stored as its integer value.
package quotationrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/quotation"

	"github.com/google/uuid"
)

// QuotationDTO is the row of the quotations table.
type QuotationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProjectID uuid.UUID `gorm:"type:uuid;index;not null"`
	Status    int       `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (QuotationDTO) TableName() string {
	return "quotations"
}

func fromDomain(q *quotation.Quotation) QuotationDTO {
	return QuotationDTO{
		ID:        q.ID().Bytes(),
		ProjectID: q.ProjectID().Bytes(),
		Status:    int(q.Status()),
		CreatedAt: q.CreatedAt(),
		UpdatedAt: q.UpdatedAt(),
	}
}

func toDomain(dto QuotationDTO) (*quotation.Quotation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	projectID, err := kernel.UUIDFromBytes(dto.ProjectID[:])
	if err != nil {
		return nil, err
	}

	return quotation.RestoreQuotation(id, projectID, quotation.Status(dto.Status), dto.CreatedAt, dto.UpdatedAt)
}
