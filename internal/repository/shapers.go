package repository

import "gorm.io/gorm"

// Preload eager-loads a relation, e.g. Preload("Appointments") on a patient.
func Preload(relation string, args ...any) QueryShaper {
	return func(db *gorm.DB) *gorm.DB {
		return db.Preload(relation, args...)
	}
}

// Where adds a filter condition.
func Where(query any, args ...any) QueryShaper {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

// OrderBy orders the results, e.g. OrderBy("date DESC").
func OrderBy(expr string) QueryShaper {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(expr)
	}
}

// Paginate skips offset rows and returns at most limit rows. It is meant
// for GetAll: GetByID already limits to one row, so a non-zero offset there
// finds nothing.
func Paginate(offset, limit int) QueryShaper {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(limit)
	}
}

func scopes(shapers []QueryShaper) []func(*gorm.DB) *gorm.DB {
	fns := make([]func(*gorm.DB) *gorm.DB, 0, len(shapers))
	for _, s := range shapers {
		if s != nil {
			fns = append(fns, s)
		}
	}
	return fns
}
