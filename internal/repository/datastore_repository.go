package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jbweber/homelab/clinic/internal/domain"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DatastoreRepository provides a generic implementation of Repository for
// any domain entity. Writes are staged in a UnitOfWork; reads go straight
// to the gorm session.
type DatastoreRepository[T domain.Entity] struct {
	uow   *UnitOfWork
	table string
}

// NewDatastoreRepository creates a repository with its own unit of work
func NewDatastoreRepository[T domain.Entity](db *gorm.DB, logger zerolog.Logger) *DatastoreRepository[T] {
	return NewDatastoreRepositoryWithUnit[T](NewUnitOfWork(db, logger))
}

// NewDatastoreRepositoryWithUnit creates a repository that stages its writes
// in uow, so one SaveChanges can commit writes of several entity types.
func NewDatastoreRepositoryWithUnit[T domain.Entity](uow *UnitOfWork) *DatastoreRepository[T] {
	var zero T
	return &DatastoreRepository[T]{
		uow:   uow,
		table: zero.TableName(),
	}
}

// Add stages the entity for insertion. A zero ID lets the store assign one,
// which is written back into entity when the unit is saved.
func (r *DatastoreRepository[T]) Add(ctx context.Context, entity *T) error {
	if err := r.checkStageable(ctx, entity, false); err != nil {
		return r.uow.fail("add", r.table, err)
	}

	r.uow.stage(stagedOp{
		op:     "add",
		entity: r.table,
		apply: func(tx *gorm.DB) error {
			return tx.Omit(clause.Associations).Create(entity).Error
		},
		snapshot: func() func() {
			saved := *entity
			return func() { *entity = saved }
		},
	})
	return nil
}

// Update stages an overwrite of every column of the row with entity's ID.
// Relation fields are not written.
func (r *DatastoreRepository[T]) Update(ctx context.Context, entity *T) error {
	if err := r.checkStageable(ctx, entity, true); err != nil {
		return r.uow.fail("update", r.table, err)
	}

	id := (*entity).Identifier()
	r.uow.stage(stagedOp{
		op:     "update",
		entity: r.table,
		apply: func(tx *gorm.DB) error {
			res := tx.Model(entity).Select("*").Omit(clause.Associations).Updates(entity)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%s with ID %d: %w", r.table, id, ErrNotFound)
			}
			return nil
		},
	})
	return nil
}

// Delete stages removal of the row with entity's ID. Dependent rows go with
// it through the schema's cascade rules.
func (r *DatastoreRepository[T]) Delete(ctx context.Context, entity *T) error {
	if err := r.checkStageable(ctx, entity, true); err != nil {
		return r.uow.fail("delete", r.table, err)
	}

	id := (*entity).Identifier()
	r.uow.stage(stagedOp{
		op:     "delete",
		entity: r.table,
		apply: func(tx *gorm.DB) error {
			res := tx.Delete(entity)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%s with ID %d: %w", r.table, id, ErrNotFound)
			}
			return nil
		},
	})
	return nil
}

// GetByID retrieves the entity with the given ID after applying shapers.
// A missing row is not an error: the result is nil.
func (r *DatastoreRepository[T]) GetByID(ctx context.Context, id int64, shapers ...QueryShaper) (*T, error) {
	var entity T
	err := r.uow.db.WithContext(ctx).Scopes(scopes(shapers)...).Take(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, r.uow.fail("get", r.table, err)
	}
	return &entity, nil
}

// GetAll retrieves every entity matching the shapers.
func (r *DatastoreRepository[T]) GetAll(ctx context.Context, shapers ...QueryShaper) ([]T, error) {
	var entities []T
	if err := r.uow.db.WithContext(ctx).Scopes(scopes(shapers)...).Find(&entities).Error; err != nil {
		return nil, r.uow.fail("list", r.table, err)
	}
	if entities == nil {
		entities = []T{}
	}
	return entities, nil
}

// SaveChanges commits the repository's unit of work, including writes
// staged through other repositories sharing it.
func (r *DatastoreRepository[T]) SaveChanges(ctx context.Context) error {
	return r.uow.SaveChanges(ctx)
}

// UnitOfWork returns the unit this repository stages into
func (r *DatastoreRepository[T]) UnitOfWork() *UnitOfWork {
	return r.uow
}

func (r *DatastoreRepository[T]) checkStageable(ctx context.Context, entity *T, needID bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if entity == nil {
		return fmt.Errorf("nil %s entity: %w", r.table, ErrInvalidEntity)
	}
	if needID && (*entity).Identifier() == 0 {
		return fmt.Errorf("%s entity has no ID: %w", r.table, ErrInvalidEntity)
	}
	return nil
}
