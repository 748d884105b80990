package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/core/domain/model/quotation"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// ConfirmQuotationPaymentCommandHandler materializes the manufacturing orders
// of a paid quotation.
//
// In one commit it creates an order per part, moves the quotation from Quoted
// to Paid and locks the project. The commit also checks that every selection
// it priced is still stored, so a quote reselected meanwhile turns the
// payment into a ConflictError instead of orders for a stale subtotal. Order ids are derived from the quotation and
// part ids, so a repeated or concurrent confirmation cannot create duplicates:
// when the commit loses its guard and the quotation turns out to be Paid, the
// orders already stored are returned as if this call had created them.
//
// Example:
//
//	cmd, _ := NewConfirmQuotationPaymentCommand(quotationID, amount)
//	orders, err := handler.Handle(ctx, cmd)
//	var mismatch *quotation.PaymentAmountMismatchError
//	if errors.As(err, &mismatch) {
//	    // refund, nothing was written
//	}
type ConfirmQuotationPaymentCommandHandler struct {
	txFactory  TransactionFactory
	quotations ports.QuotationRepository
	parts      ports.PartRepository
	orders     ports.OrderRepository
	planner    services.OrderPlanner
	clock      Clock
}

// NewConfirmQuotationPaymentCommandHandler creates the payment handler.
// Requires the planner that prices selections and builds the orders.
func NewConfirmQuotationPaymentCommandHandler(
	txFactory TransactionFactory,
	quotations ports.QuotationRepository,
	parts ports.PartRepository,
	orders ports.OrderRepository,
	planner services.OrderPlanner,
	clock Clock,
) ConfirmQuotationPaymentCommandHandler {
	return ConfirmQuotationPaymentCommandHandler{
		txFactory:  txFactory,
		quotations: quotations,
		parts:      parts,
		orders:     orders,
		planner:    planner,
		clock:      clock,
	}
}

// Handle confirms the payment of cmd.QuotationID and returns its orders.
func (h *ConfirmQuotationPaymentCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmQuotationPaymentCommand,
) ([]*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var (
		q     *quotation.Quotation
		parts []*part.Part
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		q, err = h.quotations.Get(gctx, cmd.QuotationID())
		return err
	})
	g.Go(func() (err error) {
		parts, err = h.parts.ListByQuotation(gctx, cmd.QuotationID())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if q.Status() == quotation.Paid {
		return h.alreadyPaid(ctx, q, parts, cmd)
	}

	now := utcNow(h.clock)
	orders, err := h.planner.Plan(q, parts, cmd.Amount(), now, now)
	if err != nil {
		return nil, err
	}

	tx := h.txFactory.Create()
	for _, o := range orders {
		tx.AddItem(ports.CreateOrder{Order: o})
	}
	tx.AddItems(
		ports.UpdateQuotationStatus{QuotationID: q.ID(), From: quotation.Quoted, To: quotation.Paid, At: now},
		ports.LockProject{ProjectID: q.ProjectID(), At: now},
	)
	// The selections priced above must still be the stored ones. These guards
	// follow the quotation update so they lock rows in the same order as
	// SelectPartQuote does.
	for _, o := range orders {
		tx.AddItem(ports.CheckPartSelection{QuotationID: q.ID(), PartID: o.PartID(), SelectedPartQuoteID: o.PartQuoteID()})
	}

	err = tx.Execute(ctx)
	if err == nil {
		return orders, nil
	}
	if !errors.Is(err, errs.ErrConditionalCheckFailed) {
		return nil, err
	}

	current, getErr := h.quotations.Get(ctx, q.ID())
	if getErr != nil {
		return nil, getErr
	}
	if current.Status() != quotation.Paid {
		return nil, NewConflictError("confirm quotation payment", err)
	}
	return h.orders.ListByQuotation(ctx, q.ID())
}

// alreadyPaid answers a repeated confirmation. The amount must still match.
func (h *ConfirmQuotationPaymentCommandHandler) alreadyPaid(
	ctx context.Context,
	q *quotation.Quotation,
	parts []*part.Part,
	cmd ConfirmQuotationPaymentCommand,
) ([]*order.Order, error) {
	subtotal, err := h.planner.Subtotal(parts)
	if err != nil {
		return nil, err
	}
	if !cmd.Amount().Equal(subtotal) {
		return nil, &quotation.PaymentAmountMismatchError{Expected: subtotal, Received: cmd.Amount()}
	}

	return h.orders.ListByQuotation(ctx, q.ID())
}
