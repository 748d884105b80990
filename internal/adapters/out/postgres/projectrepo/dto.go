// Package projectrepo maps project aggregates to the projects table.
package projectrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/project"

	"github.com/google/uuid"
)

// ProjectDTO is the row of the projects table.
type ProjectDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name       string    `gorm:"size:255;not null"`
	IsLocked   bool      `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ProjectDTO) TableName() string {
	return "projects"
}

func fromDomain(p *project.Project) ProjectDTO {
	return ProjectDTO{
		ID:         p.ID().Bytes(),
		CustomerID: p.CustomerID().Bytes(),
		Name:       p.Name(),
		IsLocked:   p.IsLocked(),
		CreatedAt:  p.CreatedAt(),
		UpdatedAt:  p.UpdatedAt(),
	}
}

func toDomain(dto ProjectDTO) (*project.Project, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	return project.RestoreProject(id, customerID, dto.Name, dto.IsLocked, dto.CreatedAt, dto.UpdatedAt)
}
