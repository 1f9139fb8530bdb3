package migrations

import (
	"context"
	"database/sql"
)

// GetPerformanceMigrations returns performance optimization migrations
func GetPerformanceMigrations() []Migration {
	return []Migration{
		{
			Version: 10,
			Name:    "add_foreign_key_indices",
			Up: func(ctx context.Context, tx *sql.Tx) error {
				// SQLite does not index foreign key columns on its own; cascades
				// scan the child table without these.
				return execAll(ctx, tx, []string{
					"CREATE INDEX IF NOT EXISTS idx_staffs_department_id ON staffs(department_id)",
					"CREATE INDEX IF NOT EXISTS idx_appointments_patient_id ON appointments(patient_id)",
					"CREATE INDEX IF NOT EXISTS idx_appointments_staff_id ON appointments(staff_id)",
					"CREATE INDEX IF NOT EXISTS idx_medical_records_patient_id ON medical_records(patient_id)",
					"CREATE INDEX IF NOT EXISTS idx_patients_email ON patients(email)",
				})
			},
			Down: func(ctx context.Context, tx *sql.Tx) error {
				return execAll(ctx, tx, []string{
					"DROP INDEX IF EXISTS idx_staffs_department_id",
					"DROP INDEX IF EXISTS idx_appointments_patient_id",
					"DROP INDEX IF EXISTS idx_appointments_staff_id",
					"DROP INDEX IF EXISTS idx_medical_records_patient_id",
					"DROP INDEX IF EXISTS idx_patients_email",
				})
			},
		},
	}
}

// All returns every migration in version order. Seed data is included when
// seed is true.
func All(seed bool) []Migration {
	all := GetInitialMigrations()
	if seed {
		all = append(all, GetSeedMigrations()...)
	}
	return append(all, GetPerformanceMigrations()...)
}
