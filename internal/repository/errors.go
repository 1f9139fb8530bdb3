package repository

import (
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Common repository errors that can be checked with errors.Is()
var (
	// ErrNotFound is returned when an update or delete matched no row
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when attempting to create an entity that already exists
	ErrDuplicate = errors.New("entity already exists")

	// ErrConstraint is returned when the schema rejects a row (foreign key,
	// length, required field)
	ErrConstraint = errors.New("constraint violation")

	// ErrInvalidEntity is returned when an entity cannot be staged
	ErrInvalidEntity = errors.New("invalid entity")
)

// PersistenceError is the single error type returned at the repository
// boundary. Err is the underlying cause, unchanged.
type PersistenceError struct {
	Op     string // add, update, delete, get, list or save
	Entity string // table name
	Err    error

	kind error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is matches the error kind, so errors.Is(err, ErrDuplicate) works even when
// the cause is a raw driver error.
func (e *PersistenceError) Is(target error) bool {
	return e.kind != nil && target == e.kind
}

func newPersistenceError(op, entity string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Entity: entity, Err: err, kind: classify(err)}
}

// classify maps a storage engine error to one of the sentinel kinds, or nil.
func classify(err error) error {
	for _, kind := range []error{ErrNotFound, ErrDuplicate, ErrConstraint, ErrInvalidEntity} {
		if errors.Is(err, kind) {
			return kind
		}
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return ErrDuplicate
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return ErrConstraint
		}
		if sqliteErr.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
			return nil
		}
	}

	// Primary result codes do not say which constraint failed; the message does.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ErrDuplicate
	case strings.Contains(msg, "constraint failed"):
		return ErrConstraint
	}
	return nil
}
