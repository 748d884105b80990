// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// Money is stored as an exact numeric amount plus a currency column.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The (quotation_id, part_id) pair is unique: one order per part of a paid quotation.
type OrderDTO struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey"`
	ClientID        uuid.UUID           `gorm:"type:uuid;index;not null"`
	ProjectID       uuid.UUID           `gorm:"type:uuid;index;not null"`
	QuotationID     uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_orders_quotation_part"`
	PartID          uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_orders_quotation_part"`
	PartQuoteID     uuid.UUID           `gorm:"type:uuid;not null"`
	PaymentAmount   decimal.Decimal     `gorm:"type:numeric(20,4);not null"`
	PaymentCurrency string              `gorm:"size:3;not null"`
	PayoutAmount    decimal.NullDecimal `gorm:"type:numeric(20,4)"`
	PayoutCurrency  *string             `gorm:"size:3"`
	Deadline        time.Time           `gorm:"type:date;not null"`
	Status          int                 `gorm:"index;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:              o.ID().Bytes(),
		ClientID:        o.ClientID().Bytes(),
		ProjectID:       o.ProjectID().Bytes(),
		QuotationID:     o.QuotationID().Bytes(),
		PartID:          o.PartID().Bytes(),
		PartQuoteID:     o.PartQuoteID().Bytes(),
		PaymentAmount:   o.Payment().Amount(),
		PaymentCurrency: o.Payment().Currency(),
		Deadline:        o.Deadline(),
		Status:          int(o.Status()),
		CreatedAt:       o.CreatedAt(),
		UpdatedAt:       o.UpdatedAt(),
	}
	if payout := o.Payout(); payout != nil {
		currency := payout.Currency()
		dto.PayoutAmount = decimal.NewNullDecimal(payout.Amount())
		dto.PayoutCurrency = &currency
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	ids := make([]kernel.UUID, 0, 6)
	for _, raw := range []uuid.UUID{dto.ID, dto.ClientID, dto.ProjectID, dto.QuotationID, dto.PartID, dto.PartQuoteID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	payment, err := kernel.NewMoney(dto.PaymentAmount, dto.PaymentCurrency)
	if err != nil {
		return nil, err
	}

	var payout *kernel.Money
	if dto.PayoutAmount.Valid && dto.PayoutCurrency != nil {
		p, payoutErr := kernel.NewMoney(dto.PayoutAmount.Decimal, *dto.PayoutCurrency)
		if payoutErr != nil {
			return nil, payoutErr
		}
		payout = &p
	}

	return order.RestoreOrder(
		ids[0], ids[1], ids[2], ids[3], ids[4], ids[5],
		payment, payout, dto.Deadline, order.Status(dto.Status), dto.CreatedAt, dto.UpdatedAt,
	)
}
