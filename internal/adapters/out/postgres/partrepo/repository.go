package partrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/adapters/out/postgres/storeerr"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/part"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPartRepository implements ports.PartRepository using GORM.
type GormPartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPartRepository creates a new GORM part repository. tracker may be nil.
func NewGormPartRepository(db *gorm.DB, tracker aggregateTracker) *GormPartRepository {
	return &GormPartRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a part row. Its quotes are inserted separately with AddQuote.
func (r *GormPartRepository) Add(ctx context.Context, aggregate *part.Part) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return err
	}

	r.track(aggregate.ID(), aggregate)
	return nil
}

// AddQuote inserts a quote of an existing part.
func (r *GormPartRepository) AddQuote(ctx context.Context, quote *part.PartQuote) error {
	if err := quote.Validate(); err != nil {
		return err
	}

	dto := quoteFromDomain(quote)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update applies patch to the part when it belongs to patch.QuotationID and
// fails with errs.ConditionalCheckFailedError otherwise.
func (r *GormPartRepository) Update(ctx context.Context, patch part.UpdatablePart, at time.Time) error {
	values := map[string]any{"updated_at": at}
	if patch.File != nil {
		values["file_name"] = patch.File.Name()
		values["file_key"] = patch.File.Key()
	}
	if patch.SelectedPartQuoteID != nil {
		values["selected_part_quote_id"] = patch.SelectedPartQuoteID.Bytes()
	}

	result := r.db.WithContext(ctx).
		Model(&PartDTO{}).
		Where("id = ? AND quotation_id = ?", patch.PartID.Bytes(), patch.QuotationID.Bytes()).
		Updates(values)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConditionalCheckFailedError("part " + patch.PartID.String() + " is not in quotation")
	}

	r.track(patch.PartID, nil)
	return nil
}

// CheckSelection holds a row lock on the part while selected is still its
// selected quote and fails with errs.ConditionalCheckFailedError otherwise.
func (r *GormPartRepository) CheckSelection(ctx context.Context, quotationID, partID, selected kernel.UUID) error {
	result := r.db.WithContext(ctx).Exec(
		"UPDATE parts SET selected_part_quote_id = selected_part_quote_id "+
			"WHERE id = ? AND quotation_id = ? AND selected_part_quote_id = ?",
		partID.Bytes(), quotationID.Bytes(), selected.Bytes(),
	)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConditionalCheckFailedError("part " + partID.String() + " selection changed")
	}
	return nil
}

// Get retrieves a part of a quotation with all of its quotes.
func (r *GormPartRepository) Get(ctx context.Context, quotationID, partID kernel.UUID) (*part.Part, error) {
	if err := errors.Join(quotationID.Validate(), partID.Validate()); err != nil {
		return nil, err
	}

	var dto PartDTO
	if err := r.withQuotes(ctx).
		First(&dto, "id = ? AND quotation_id = ?", partID.Bytes(), quotationID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("part", partID.String())
		}
		return nil, storeerr.Classify("get part", err)
	}

	return toDomain(dto)
}

// ListByQuotation retrieves the parts of a quotation in creation order.
func (r *GormPartRepository) ListByQuotation(ctx context.Context, quotationID kernel.UUID) ([]*part.Part, error) {
	if err := quotationID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PartDTO
	if err := r.withQuotes(ctx).
		Order("id").
		Find(&dtos, "quotation_id = ?", quotationID.Bytes()).Error; err != nil {
		return nil, storeerr.Classify("list parts", err)
	}

	parts := make([]*part.Part, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}

	return parts, nil
}

// withQuotes preloads quotes in creation order. Ids are time ordered.
func (r *GormPartRepository) withQuotes(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Quotes", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

func (r *GormPartRepository) track(id kernel.UUID, aggregate any) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(id, aggregate)
	}
}
