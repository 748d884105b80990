package quotationrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/adapters/out/postgres/storeerr"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/quotation"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormQuotationRepository implements ports.QuotationRepository using GORM.
type GormQuotationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormQuotationRepository creates a new GORM quotation repository. tracker may be nil.
func NewGormQuotationRepository(db *gorm.DB, tracker aggregateTracker) *GormQuotationRepository {
	return &GormQuotationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new quotation.
func (r *GormQuotationRepository) Add(ctx context.Context, aggregate *quotation.Quotation) error {
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

// UpdateStatus moves the quotation from one status to another. It fails with
// errs.ConditionalCheckFailedError when the stored status is not from.
func (r *GormQuotationRepository) UpdateStatus(
	ctx context.Context,
	id kernel.UUID,
	from, to quotation.Status,
	at time.Time,
) error {
	result := r.db.WithContext(ctx).
		Model(&QuotationDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(from)).
		Updates(map[string]any{"status": int(to), "updated_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConditionalCheckFailedError("quotation " + id.String() + " is not " + from.String())
	}

	r.track(id, nil)
	return nil
}

// CheckStatus holds a row lock on the quotation while its status is one of
// allowed and fails with errs.ConditionalCheckFailedError otherwise.
func (r *GormQuotationRepository) CheckStatus(ctx context.Context, id kernel.UUID, allowed []quotation.Status) error {
	statuses := make([]int, 0, len(allowed))
	for _, s := range allowed {
		statuses = append(statuses, int(s))
	}
	if len(statuses) == 0 {
		return errs.NewConditionalCheckFailedError("quotation " + id.String() + " has no allowed status")
	}

	result := r.db.WithContext(ctx).
		Exec("UPDATE quotations SET status = status WHERE id = ? AND status IN ?", id.Bytes(), statuses)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConditionalCheckFailedError("quotation " + id.String() + " status changed")
	}
	return nil
}

// Get retrieves a quotation by ID.
func (r *GormQuotationRepository) Get(ctx context.Context, id kernel.UUID) (*quotation.Quotation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto QuotationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("quotation", id.String())
		}
		return nil, storeerr.Classify("get quotation", err)
	}

	return toDomain(dto)
}

// ListByStatus retrieves quotations in status, oldest first.
func (r *GormQuotationRepository) ListByStatus(
	ctx context.Context,
	status quotation.Status,
) ([]*quotation.Quotation, error) {
	var dtos []QuotationDTO
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&dtos, "status = ?", int(status)).Error; err != nil {
		return nil, storeerr.Classify("list quotations", err)
	}

	quotations := make([]*quotation.Quotation, 0, len(dtos))
	for _, dto := range dtos {
		q, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		quotations = append(quotations, q)
	}

	return quotations, nil
}

func (r *GormQuotationRepository) track(id kernel.UUID, aggregate any) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(id, aggregate)
	}
}
