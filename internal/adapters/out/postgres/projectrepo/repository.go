package projectrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/adapters/out/postgres/storeerr"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/project"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProjectRepository implements ports.ProjectRepository using GORM. Its
// write methods are used by the transaction coordinator only.
type GormProjectRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormProjectRepository creates a new GORM project repository. tracker may be nil.
func NewGormProjectRepository(db *gorm.DB, tracker aggregateTracker) *GormProjectRepository {
	return &GormProjectRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new project.
func (r *GormProjectRepository) Add(ctx context.Context, aggregate *project.Project) error {
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

// Lock sets is_locked on an existing project.
func (r *GormProjectRepository) Lock(ctx context.Context, id kernel.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&ProjectDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{"is_locked": true, "updated_at": at})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConditionalCheckFailedError("lock project " + id.String())
	}

	r.track(id, nil)
	return nil
}

// EnsureUnlocked holds a row lock on the project while it is unlocked and
// fails with errs.ConditionalCheckFailedError otherwise.
func (r *GormProjectRepository) EnsureUnlocked(ctx context.Context, id kernel.UUID) error {
	result := r.db.WithContext(ctx).
		Exec("UPDATE projects SET is_locked = is_locked WHERE id = ? AND is_locked = ?", id.Bytes(), false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConditionalCheckFailedError("project " + id.String() + " is missing or locked")
	}
	return nil
}

// Get retrieves a project by ID.
func (r *GormProjectRepository) Get(ctx context.Context, id kernel.UUID) (*project.Project, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProjectDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("project", id.String())
		}
		return nil, storeerr.Classify("get project", err)
	}

	return toDomain(dto)
}

func (r *GormProjectRepository) track(id kernel.UUID, aggregate any) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(id, aggregate)
	}
}
