// Package postgres implements the atomic transaction coordinator over GORM.
//
// A GormTransaction buffers heterogeneous write items and commits them in a
// single database transaction. Guarded items are conditional statements whose
// affected row count decides whether the guard held:
//
//	tx := factory.Create()
//	tx.AddItems(
//	    ports.CreateOrder{Order: o},
//	    ports.UpdateQuotationStatus{QuotationID: id, From: quotation.Quoted, To: quotation.Paid, At: now},
//	)
//	if err := tx.Execute(ctx); errors.Is(err, errs.ErrConditionalCheckFailed) {
//	    // somebody else moved the quotation first, nothing was written
//	}
//
// Each command creates its own transaction. Concurrent commands only
// coordinate through the guards.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/adapters/out/postgres/partrepo"
	"marketplace/internal/adapters/out/postgres/projectrepo"
	"marketplace/internal/adapters/out/postgres/quotationrepo"
	"marketplace/internal/adapters/out/postgres/storeerr"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// DefaultMaxItems is the atomic write item limit used when none is configured.
const DefaultMaxItems = 100

// trackedAggregate is an aggregate written by a committed transaction.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormTransactionFactory creates GormTransaction instances sharing one connection pool.
type GormTransactionFactory struct {
	db       *gorm.DB
	maxItems int
	logger   *slog.Logger
}

// NewGormTransactionFactory creates a factory. maxItems <= 0 selects DefaultMaxItems.
func NewGormTransactionFactory(db *gorm.DB, maxItems int, logger *slog.Logger) *GormTransactionFactory {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GormTransactionFactory{
		db:       db,
		maxItems: maxItems,
		logger:   logger.With("component", "transaction"),
	}
}

// Create returns an empty transaction.
func (f *GormTransactionFactory) Create() ports.Transaction {
	return &GormTransaction{
		db:       f.db,
		maxItems: f.maxItems,
		logger:   f.logger,
	}
}

// GormTransaction is the GORM implementation of ports.Transaction.
type GormTransaction struct {
	db       *gorm.DB
	maxItems int
	logger   *slog.Logger

	items             []ports.TransactionItem
	trackedAggregates []trackedAggregate
}

// AddItem buffers one write. Nothing reaches the store before Execute.
func (t *GormTransaction) AddItem(item ports.TransactionItem) {
	t.items = append(t.items, item)
}

// AddItems buffers writes in the order given. Execute applies them in
// that order, so guards placed late run after the earlier writes.
func (t *GormTransaction) AddItems(items ...ports.TransactionItem) {
	t.items = append(t.items, items...)
}

// Len returns the number of buffered items.
func (t *GormTransaction) Len() int {
	return len(t.items)
}

// Execute commits all buffered items in one database transaction.
func (t *GormTransaction) Execute(ctx context.Context) error {
	items := t.items
	t.items = nil
	t.trackedAggregates = nil

	if len(items) == 0 {
		return nil
	}
	if len(items) > t.maxItems {
		return errs.NewTransactionTooLargeError(len(items), t.maxItems)
	}

	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			if err := t.apply(ctx, tx, item); err != nil {
				return storeerr.Classify(item.Describe(), err)
			}
		}
		return nil
	})
	if err != nil {
		t.trackedAggregates = nil
		err = storeerr.Classify("commit transaction", err)
		t.logger.DebugContext(ctx, "transaction rolled back", "items", len(items), "error", err)
		return err
	}

	t.logger.DebugContext(ctx, "transaction committed", "items", len(items), "aggregates", len(t.trackedAggregates))
	return nil
}

func (t *GormTransaction) apply(ctx context.Context, tx *gorm.DB, item ports.TransactionItem) error {
	switch it := item.(type) {
	case ports.CreateProject:
		return projectrepo.NewGormProjectRepository(tx, t).Add(ctx, it.Project)
	case ports.LockProject:
		return projectrepo.NewGormProjectRepository(tx, t).Lock(ctx, it.ProjectID, it.At)
	case ports.CheckProjectUnlocked:
		return projectrepo.NewGormProjectRepository(tx, t).EnsureUnlocked(ctx, it.ProjectID)
	case ports.CreateQuotation:
		return quotationrepo.NewGormQuotationRepository(tx, t).Add(ctx, it.Quotation)
	case ports.UpdateQuotationStatus:
		return quotationrepo.NewGormQuotationRepository(tx, t).UpdateStatus(ctx, it.QuotationID, it.From, it.To, it.At)
	case ports.CheckQuotationStatus:
		return quotationrepo.NewGormQuotationRepository(tx, t).CheckStatus(ctx, it.QuotationID, it.Allowed)
	case ports.CreatePart:
		return partrepo.NewGormPartRepository(tx, t).Add(ctx, it.Part)
	case ports.UpdatePart:
		return partrepo.NewGormPartRepository(tx, t).Update(ctx, it.Patch, it.At)
	case ports.CheckPartSelection:
		return partrepo.NewGormPartRepository(tx, t).CheckSelection(ctx, it.QuotationID, it.PartID, it.SelectedPartQuoteID)
	case ports.CreatePartQuote:
		return partrepo.NewGormPartRepository(tx, t).AddQuote(ctx, it.Quote)
	case ports.CreateOrder:
		return orderrepo.NewGormOrderRepository(tx, t).Add(ctx, it.Order)
	case ports.UpdateOrderStatus:
		return orderrepo.NewGormOrderRepository(tx, t).UpdateStatus(ctx, it.OrderID, it.From, it.To, it.At)
	case ports.SetOrderPayout:
		return orderrepo.NewGormOrderRepository(tx, t).UpdatePayout(ctx, it.OrderID, it.Payout, it.At)
	}

	return fmt.Errorf("unsupported transaction item %T", item)
}

// TrackAggregate registers an aggregate written within this transaction.
// Repositories call it after each successful write.
func (t *GormTransaction) TrackAggregate(id kernel.UUID, aggregate any) {
	t.trackedAggregates = append(t.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
