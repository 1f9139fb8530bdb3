package datastore

import (
	"context"
	"reflect"
	"time"

	"gorm.io/gorm"
)

var timeType = reflect.TypeOf(time.Time{})

// registerUTCTimes converts every time.Time field of a row to UTC before
// gorm writes it. Stored times then share one offset, so date columns sort
// chronologically as text. The caller's entity is updated in place.
func registerUTCTimes(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register("clinic:utc_times", utcTimes); err != nil {
		return err
	}
	return db.Callback().Update().Before("gorm:update").Register("clinic:utc_times", utcTimes)
}

func utcTimes(db *gorm.DB) {
	if db.Error != nil || db.Statement.Schema == nil {
		return
	}

	ctx := db.Statement.Context
	rv := db.Statement.ReflectValue
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			utcRow(ctx, db, reflect.Indirect(rv.Index(i)))
		}
	case reflect.Struct:
		utcRow(ctx, db, rv)
	}
}

func utcRow(ctx context.Context, db *gorm.DB, row reflect.Value) {
	if !row.CanAddr() {
		return
	}
	for _, field := range db.Statement.Schema.Fields {
		if field.FieldType != timeType {
			continue
		}
		v, zero := field.ValueOf(ctx, row)
		if zero {
			continue
		}
		t, ok := v.(time.Time)
		if !ok {
			continue
		}
		if err := field.Set(ctx, row, t.UTC()); err != nil {
			db.AddError(err)
			return
		}
	}
}
