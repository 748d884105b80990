// Package queries contains read-only operations of the CQRS architecture.
// Order listings read the orders table directly; the quotation view is
// assembled from the read repositories.
package queries

import (
	"database/sql"
	"time"

	"marketplace/internal/adapters/out/postgres/storeerr"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderView is the read model of a manufacturing order.
type OrderView struct {
	ID          kernel.UUID
	QuotationID kernel.UUID
	PartID      kernel.UUID
	PartQuoteID kernel.UUID
	Payment     kernel.Money
	Payout      *kernel.Money
	Deadline    time.Time
	Status      order.Status
}

const orderViewColumns = `
	id,
	quotation_id,
	part_id,
	part_quote_id,
	payment_amount,
	payment_currency,
	payout_amount,
	payout_currency,
	deadline,
	status`

// scanOrderViews reads every row of rows. Store failures are classified
// under operation.
func scanOrderViews(operation string, rows *sql.Rows) ([]OrderView, error) {
	defer rows.Close()

	views := make([]OrderView, 0)
	for rows.Next() {
		var (
			id, quotationID, partID, partQuoteID uuid.UUID
			paymentAmount                        decimal.Decimal
			paymentCurrency                      string
			payoutAmount                         decimal.NullDecimal
			payoutCurrency                       sql.NullString
			deadline                             time.Time
			status                               int
		)
		if err := rows.Scan(
			&id,
			&quotationID,
			&partID,
			&partQuoteID,
			&paymentAmount,
			&paymentCurrency,
			&payoutAmount,
			&payoutCurrency,
			&deadline,
			&status,
		); err != nil {
			return nil, storeerr.Classify(operation, err)
		}

		view, err := newOrderView(
			[]uuid.UUID{id, quotationID, partID, partQuoteID},
			paymentAmount, paymentCurrency,
			payoutAmount, payoutCurrency,
			deadline, status,
		)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, storeerr.Classify(operation, err)
	}
	return views, nil
}

func newOrderView(
	rawIDs []uuid.UUID,
	paymentAmount decimal.Decimal,
	paymentCurrency string,
	payoutAmount decimal.NullDecimal,
	payoutCurrency sql.NullString,
	deadline time.Time,
	status int,
) (OrderView, error) {
	ids := make([]kernel.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return OrderView{}, err
		}
		ids = append(ids, id)
	}

	payment, err := kernel.NewMoney(paymentAmount, paymentCurrency)
	if err != nil {
		return OrderView{}, err
	}

	view := OrderView{
		ID:          ids[0],
		QuotationID: ids[1],
		PartID:      ids[2],
		PartQuoteID: ids[3],
		Payment:     payment,
		Deadline:    deadline.UTC(),
		Status:      order.Status(status),
	}
	if payoutAmount.Valid && payoutCurrency.Valid {
		payout, err := kernel.NewMoney(payoutAmount.Decimal, payoutCurrency.String)
		if err != nil {
			return OrderView{}, err
		}
		view.Payout = &payout
	}
	return view, nil
}
