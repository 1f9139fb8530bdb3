package migrations

import (
	"context"
	"database/sql"
)

// SQLite ignores VARCHAR lengths, so length and non-empty rules are CHECK
// constraints. Every foreign key cascades on delete.
var initialTables = []string{
	`CREATE TABLE patients (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL CHECK (length(first_name) BETWEEN 1 AND 50),
		last_name TEXT NOT NULL CHECK (length(last_name) BETWEEN 1 AND 50),
		birthdate DATETIME NOT NULL,
		address TEXT NOT NULL DEFAULT '' CHECK (length(address) <= 200),
		phone_number TEXT NOT NULL DEFAULT '' CHECK (length(phone_number) <= 15),
		email TEXT NOT NULL CHECK (length(email) BETWEEN 1 AND 100)
	)`,
	`CREATE TABLE departments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL CHECK (length(name) BETWEEN 1 AND 100)
	)`,
	`CREATE TABLE staffs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL CHECK (length(first_name) BETWEEN 1 AND 50),
		last_name TEXT NOT NULL CHECK (length(last_name) BETWEEN 1 AND 50),
		role TEXT NOT NULL CHECK (length(role) BETWEEN 1 AND 50),
		email TEXT NOT NULL CHECK (length(email) BETWEEN 1 AND 100),
		phone_number TEXT NOT NULL DEFAULT '' CHECK (length(phone_number) <= 15),
		department_id INTEGER NOT NULL,
		FOREIGN KEY (department_id) REFERENCES departments(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE appointments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_id INTEGER NOT NULL,
		staff_id INTEGER NOT NULL,
		date DATETIME NOT NULL,
		reason TEXT NOT NULL DEFAULT '' CHECK (length(reason) <= 400),
		is_canceled BOOLEAN NOT NULL DEFAULT 0,
		FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE,
		FOREIGN KEY (staff_id) REFERENCES staffs(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE medical_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_id INTEGER NOT NULL,
		record_date DATETIME NOT NULL,
		diagnosis TEXT NOT NULL DEFAULT '' CHECK (length(diagnosis) <= 400),
		treatment TEXT NOT NULL DEFAULT '' CHECK (length(treatment) <= 400),
		notes TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (patient_id) REFERENCES patients(id) ON DELETE CASCADE
	)`,
}

// Dependents first so a rollback never trips a foreign key.
var initialDrops = []string{
	`DROP TABLE IF EXISTS medical_records`,
	`DROP TABLE IF EXISTS appointments`,
	`DROP TABLE IF EXISTS staffs`,
	`DROP TABLE IF EXISTS departments`,
	`DROP TABLE IF EXISTS patients`,
}

// Tables lists the clinic tables created by the initial migration.
func Tables() []string {
	return []string{"patients", "departments", "staffs", "appointments", "medical_records"}
}

// GetInitialMigrations returns the schema migrations
func GetInitialMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_clinic_tables",
			Up: func(ctx context.Context, tx *sql.Tx) error {
				return execAll(ctx, tx, initialTables)
			},
			Down: func(ctx context.Context, tx *sql.Tx) error {
				return execAll(ctx, tx, initialDrops)
			},
		},
	}
}

func execAll(ctx context.Context, tx *sql.Tx, statements []string) error {
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
