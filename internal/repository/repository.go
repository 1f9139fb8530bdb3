package repository

import (
	"context"

	"github.com/jbweber/homelab/clinic/internal/domain"
	"gorm.io/gorm"
)

// QueryShaper transforms the base query of a read before it runs: preload a
// relation, add a filter, order or page the results.
type QueryShaper func(*gorm.DB) *gorm.DB

// Repository defines the CRUD operations shared by every entity type.
// Writes are staged in a unit of work and reach the database only on
// SaveChanges; reads always query the database.
type Repository[T domain.Entity] interface {
	// Add stages the entity for insertion
	Add(ctx context.Context, entity *T) error

	// Update stages an overwrite of the row with the entity's identifier
	Update(ctx context.Context, entity *T) error

	// Delete stages removal of the row with the entity's identifier
	Delete(ctx context.Context, entity *T) error

	// GetByID retrieves an entity by its ID
	// Returns nil and no error if the entity doesn't exist
	GetByID(ctx context.Context, id int64, shapers ...QueryShaper) (*T, error)

	// GetAll retrieves all entities matching the shapers
	// Returns an empty slice, never nil, when nothing matches
	GetAll(ctx context.Context, shapers ...QueryShaper) ([]T, error)

	// SaveChanges commits every staged write as one transaction
	SaveChanges(ctx context.Context) error
}
