package orderrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/adapters/out/postgres/storeerr"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository. tracker may be nil.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database. An existing order with the same id
// makes the insert fail with a duplicate key error.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.track(aggregate.ID(), aggregate)
	return nil
}

// UpdateStatus moves an order from one status to the next. It writes only
// the status columns, so a payout stored meanwhile survives, and fails with
// errs.ConditionalCheckFailedError when the stored status is no longer from.
//
// Example:
//
//	err := repo.UpdateStatus(ctx, id, order.Created, order.InProgress, now)
//	if errors.Is(err, errs.ErrConditionalCheckFailed) {
//	    // another advance won
//	}
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id kernel.UUID, from, to order.Status, at time.Time) error {
	if err := errors.Join(id.Validate(), from.Validate(), to.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(from)).
		Updates(map[string]any{
			"status":     int(to),
			"updated_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConditionalCheckFailedError("order " + id.String() + " is not " + from.String())
	}

	r.track(id, nil)
	return nil
}

// UpdatePayout stores the payout of an existing order and leaves its status
// alone. It fails with errs.ConditionalCheckFailedError when the order does
// not exist.
func (r *GormOrderRepository) UpdatePayout(ctx context.Context, id kernel.UUID, payout kernel.Money, at time.Time) error {
	if err := errors.Join(id.Validate(), payout.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"payout_amount":   decimal.NewNullDecimal(payout.Amount()),
			"payout_currency": payout.Currency(),
			"updated_at":      at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConditionalCheckFailedError("order " + id.String() + " does not exist")
	}

	r.track(id, nil)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, storeerr.Classify("get order", err)
	}

	return toDomain(dto)
}

// ListByQuotation retrieves the orders of a quotation in part order.
func (r *GormOrderRepository) ListByQuotation(ctx context.Context, quotationID kernel.UUID) ([]*order.Order, error) {
	if err := quotationID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("part_id").Find(&dtos, "quotation_id = ?", quotationID.Bytes()).Error; err != nil {
		return nil, storeerr.Classify("list orders by quotation", err)
	}

	return toDomainList(dtos)
}

// ListByStatus retrieves orders in status, earliest deadline first.
func (r *GormOrderRepository) ListByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("deadline, id").Find(&dtos, "status = ?", int(status)).Error; err != nil {
		return nil, storeerr.Classify("list orders by status", err)
	}

	return toDomainList(dtos)
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) track(id kernel.UUID, aggregate any) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(id, aggregate)
	}
}
