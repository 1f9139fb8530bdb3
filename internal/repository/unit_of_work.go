package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// stagedOp is one write waiting for SaveChanges.
type stagedOp struct {
	op     string
	entity string
	apply  func(tx *gorm.DB) error
	// snapshot captures the entity before apply and returns a func that puts
	// it back; used to undo identifiers written by a rolled-back insert.
	snapshot func() (restore func())
}

// UnitOfWork collects staged writes from one or more repositories and
// commits them together. It serializes its own bookkeeping, but callers
// sharing a unit must still order their Add/Update/Delete/SaveChanges
// sequence themselves.
type UnitOfWork struct {
	db     *gorm.DB
	logger zerolog.Logger
	id     uuid.UUID

	mu     sync.Mutex
	staged []stagedOp
}

// NewUnitOfWork creates an empty unit of work over db.
func NewUnitOfWork(db *gorm.DB, logger zerolog.Logger) *UnitOfWork {
	id := uuid.New()
	return &UnitOfWork{
		db:     db,
		id:     id,
		logger: logger.With().Str("unit_of_work", id.String()).Logger(),
	}
}

// ID identifies the unit in log lines.
func (u *UnitOfWork) ID() uuid.UUID {
	return u.id
}

// Pending returns the number of staged writes.
func (u *UnitOfWork) Pending() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.staged)
}

// Discard drops every staged write.
func (u *UnitOfWork) Discard() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.staged = nil
}

func (u *UnitOfWork) stage(op stagedOp) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.staged = append(u.staged, op)
}

// SaveChanges applies the staged writes in order inside one transaction.
// On success the unit is emptied. On failure the transaction is rolled
// back, the staged writes are kept and the error is logged and returned as
// a *PersistenceError.
func (u *UnitOfWork) SaveChanges(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if len(u.staged) == 0 {
		return nil
	}

	var failed *stagedOp
	var restores []func()
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range u.staged {
			op := &u.staged[i]
			if op.snapshot != nil {
				restores = append(restores, op.snapshot())
			}
			if err := op.apply(tx); err != nil {
				failed = op
				return err
			}
		}
		return nil
	})
	if err != nil {
		// newest first, so an entity staged twice ends at its oldest snapshot
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
		entity, stagedAs := "unit_of_work", ""
		if failed != nil {
			entity, stagedAs = failed.entity, failed.op
		}
		pe := newPersistenceError("save", entity, err)
		u.logger.Error().
			Err(err).
			Str("op", pe.Op).
			Str("entity", entity).
			Str("staged_op", stagedAs).
			Int("pending", len(u.staged)).
			Msg("failed to save changes")
		return pe
	}

	u.logger.Debug().Int("applied", len(u.staged)).Msg("saved changes")
	u.staged = nil
	return nil
}

// fail logs a failed repository operation once and wraps it.
func (u *UnitOfWork) fail(op, entity string, err error) error {
	pe := newPersistenceError(op, entity, err)
	u.logger.Error().
		Err(err).
		Str("op", op).
		Str("entity", entity).
		Msgf("failed to %s %s", op, entity)
	return pe
}
