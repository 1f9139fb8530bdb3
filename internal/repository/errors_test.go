package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"wrapped not found", fmt.Errorf("patients with ID 9: %w", ErrNotFound), ErrNotFound},
		{"invalid entity", fmt.Errorf("nil patients entity: %w", ErrInvalidEntity), ErrInvalidEntity},
		{"unique message", errors.New("constraint failed: UNIQUE constraint failed: patients.id (1555)"), ErrDuplicate},
		{"foreign key message", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), ErrConstraint},
		{"check message", errors.New("constraint failed: CHECK constraint failed: length(name) BETWEEN 1 AND 100 (275)"), ErrConstraint},
		{"unrelated", errors.New("sql: database is closed"), nil},
		{"context", context.Canceled, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("constraint failed: UNIQUE constraint failed: staffs.id (1555)")
	err := error(newPersistenceError("save", "staffs", cause))

	assert.Equal(t, "save staffs: "+cause.Error(), err.Error())
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NotErrorIs(t, err, ErrConstraint)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Same(t, cause, errors.Unwrap(err))

	plain := error(newPersistenceError("list", "staffs", context.DeadlineExceeded))
	assert.ErrorIs(t, plain, context.DeadlineExceeded)
	assert.NotErrorIs(t, plain, ErrDuplicate)
}
