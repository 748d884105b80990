// Package partrepo maps parts and their quotes to the parts and part_quotes
// tables. A part is always loaded with all of its quotes.
package partrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/part"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartDTO is the row of the parts table.
type PartDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID            uuid.UUID  `gorm:"type:uuid;index;not null"`
	ProjectID           uuid.UUID  `gorm:"type:uuid;index;not null"`
	QuotationID         uuid.UUID  `gorm:"type:uuid;index;not null"`
	FileName            string     `gorm:"not null"`
	FileKey             string     `gorm:"not null"`
	SelectedPartQuoteID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Quotes []PartQuoteDTO `gorm:"foreignKey:PartID;references:ID"`
}

func (PartDTO) TableName() string {
	return "parts"
}

// PartQuoteDTO is the row of the part_quotes table.
type PartQuoteDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PartID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	QuotationID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	PriceAmount   decimal.Decimal `gorm:"type:numeric(20,4);not null"`
	PriceCurrency string          `gorm:"size:3;not null"`
	LeadTimeDays  int             `gorm:"not null"`
	ValidUntil    time.Time       `gorm:"not null"`
	CreatedAt     time.Time
}

func (PartQuoteDTO) TableName() string {
	return "part_quotes"
}

func fromDomain(p *part.Part) PartDTO {
	var selected *uuid.UUID
	if id := p.SelectedQuoteID(); id != nil {
		raw := id.Bytes()
		selected = &raw
	}

	return PartDTO{
		ID:                  p.ID().Bytes(),
		ClientID:            p.ClientID().Bytes(),
		ProjectID:           p.ProjectID().Bytes(),
		QuotationID:         p.QuotationID().Bytes(),
		FileName:            p.File().Name(),
		FileKey:             p.File().Key(),
		SelectedPartQuoteID: selected,
		CreatedAt:           p.CreatedAt(),
		UpdatedAt:           p.UpdatedAt(),
	}
}

func quoteFromDomain(q *part.PartQuote) PartQuoteDTO {
	return PartQuoteDTO{
		ID:            q.ID().Bytes(),
		PartID:        q.PartID().Bytes(),
		QuotationID:   q.QuotationID().Bytes(),
		PriceAmount:   q.Price().Amount(),
		PriceCurrency: q.Price().Currency(),
		LeadTimeDays:  q.LeadTimeDays(),
		ValidUntil:    q.ValidUntil(),
		CreatedAt:     q.CreatedAt(),
	}
}

func toDomain(dto PartDTO) (*part.Part, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}
	projectID, err := kernel.UUIDFromBytes(dto.ProjectID[:])
	if err != nil {
		return nil, err
	}
	quotationID, err := kernel.UUIDFromBytes(dto.QuotationID[:])
	if err != nil {
		return nil, err
	}
	file, err := part.NewFile(dto.FileName, dto.FileKey)
	if err != nil {
		return nil, err
	}

	var selected *kernel.UUID
	if dto.SelectedPartQuoteID != nil {
		sID, selErr := kernel.UUIDFromBytes((*dto.SelectedPartQuoteID)[:])
		if selErr != nil {
			return nil, selErr
		}
		selected = &sID
	}

	quotes := make([]*part.PartQuote, 0, len(dto.Quotes))
	for _, quoteDTO := range dto.Quotes {
		q, quoteErr := quoteToDomain(quoteDTO)
		if quoteErr != nil {
			return nil, quoteErr
		}
		quotes = append(quotes, q)
	}

	return part.RestorePart(id, clientID, projectID, quotationID, file, selected, quotes, dto.CreatedAt, dto.UpdatedAt)
}

func quoteToDomain(dto PartQuoteDTO) (*part.PartQuote, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	partID, err := kernel.UUIDFromBytes(dto.PartID[:])
	if err != nil {
		return nil, err
	}
	quotationID, err := kernel.UUIDFromBytes(dto.QuotationID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.PriceAmount, dto.PriceCurrency)
	if err != nil {
		return nil, err
	}

	return part.RestorePartQuote(id, partID, quotationID, price, dto.LeadTimeDays, dto.ValidUntil, dto.CreatedAt)
}
