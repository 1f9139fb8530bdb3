package migrations

import (
	"context"
	"database/sql"
	"time"
)

type seedPatient struct {
	id                  int64
	first, last         string
	birthdate           time.Time
	address, phone, eml string
}

type seedStaff struct {
	id                       int64
	first, last, role, email string
	phone                    string
	departmentID             int64
}

type seedAppointment struct {
	id, patientID, staffID int64
	date                   time.Time
	reason                 string
}

type seedRecord struct {
	id, patientID        int64
	recordDate           time.Time
	diagnosis, treatment string
	notes                string
}

func day(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

var seedDepartments = []struct {
	id   int64
	name string
}{
	{1, "Cardiologia"},
	{2, "Oncologia"},
	{3, "Ortopedia"},
	{4, "Chirurgia"},
	{5, "Neurologia"},
}

var seedPatients = []seedPatient{
	{1, "Mario", "Rossi", day(1980, 5, 15, 0, 0), "Via Roma 10, Milano", "+39 02 1234567", "mario.rossi@example.com"},
	{2, "Giulia", "Bianchi", day(1992, 11, 22, 0, 0), "Corso Venezia 20, Milano", "+39 02 2345678", "giulia.bianchi@example.com"},
	{3, "Luca", "Verdi", day(1975, 7, 30, 0, 0), "Via Torino 5, Torino", "+39 011 3456789", "luca.verdi@example.com"},
	{4, "Francesca", "Neri", day(1988, 3, 12, 0, 0), "Piazza Duomo 1, Firenze", "+39 055 4567890", "francesca.neri@example.com"},
	{5, "Alessandro", "Russo", day(1990, 6, 8, 0, 0), "Via San Giovanni 8, Napoli", "+39 081 5678901", "alessandro.russo@example.com"},
}

var seedStaffs = []seedStaff{
	{101, "Dr. Carlo", "Marini", "Medico", "carlo.marini@ospedale.com", "+39 02 3456789", 1},
	{102, "Dr. Lucia", "Galli", "Medico", "lucia.galli@ospedale.com", "+39 02 4567890", 2},
	{103, "Dr. Andrea", "Ferri", "Medico", "andrea.ferri@ospedale.com", "+39 011 2345678", 3},
	{104, "Dr. Marta", "Morelli", "Chirurgo", "marta.morelli@ospedale.com", "+39 055 6789012", 4},
	{105, "Dr. Giovanni", "Romano", "Medico", "giovanni.romano@ospedale.com", "+39 081 3456789", 5},
}

var seedAppointments = []seedAppointment{
	{1, 1, 101, day(2024, 10, 1, 9, 0), "Controllo annuale"},
	{2, 2, 102, day(2024, 10, 2, 14, 30), "Visita specialistica"},
	{3, 3, 103, day(2024, 10, 3, 11, 0), "Controllo post-operatorio"},
	{4, 4, 104, day(2024, 10, 4, 16, 0), "Consultazione iniziale"},
	{5, 5, 105, day(2024, 10, 5, 10, 0), "Follow-up"},
}

var seedRecords = []seedRecord{
	{1, 1, day(2024, 10, 1, 0, 0), "Ipertensione", "Farmaci per pressione alta", "Inizio del trattamento con nuovi farmaci."},
	{2, 2, day(2024, 10, 2, 0, 0), "Diabete di tipo 2", "Dieta e insulina", "Monitoraggio regolare dei livelli di zucchero."},
	{3, 3, day(2024, 10, 3, 0, 0), "Frattura del femore", "Intervento chirurgico e riabilitazione", "Recupero post-operatorio in corso."},
	{4, 4, day(2024, 10, 4, 0, 0), "Asma", "Inalatori e farmaci antinfiammatori", "Controllo della funzionalità polmonare necessario."},
	{5, 5, day(2024, 10, 5, 0, 0), "Gastrite", "Farmaci antiacidi e modifiche alla dieta", "Monitoraggio dei sintomi e delle reazioni ai farmaci."},
}

// GetSeedMigrations returns the migration that loads the fixed reference rows.
// Parents are inserted before the rows that reference them.
func GetSeedMigrations() []Migration {
	return []Migration{
		{
			Version: 2,
			Name:    "seed_clinic_data",
			Up:      seed,
			Down: func(ctx context.Context, tx *sql.Tx) error {
				return execAll(ctx, tx, []string{
					`DELETE FROM departments WHERE id BETWEEN 1 AND 5`,
					`DELETE FROM patients WHERE id BETWEEN 1 AND 5`,
				})
			},
		},
	}
}

func seed(ctx context.Context, tx *sql.Tx) error {
	for _, d := range seedDepartments {
		if _, err := tx.ExecContext(ctx, "INSERT INTO departments (id, name) VALUES (?, ?)", d.id, d.name); err != nil {
			return err
		}
	}

	for _, p := range seedPatients {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO patients (id, first_name, last_name, birthdate, address, phone_number, email)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.id, p.first, p.last, p.birthdate, p.address, p.phone, p.eml)
		if err != nil {
			return err
		}
	}

	for _, s := range seedStaffs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO staffs (id, first_name, last_name, role, email, phone_number, department_id)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			s.id, s.first, s.last, s.role, s.email, s.phone, s.departmentID)
		if err != nil {
			return err
		}
	}

	for _, a := range seedAppointments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO appointments (id, patient_id, staff_id, date, reason, is_canceled)
			VALUES (?, ?, ?, ?, ?, 0)`,
			a.id, a.patientID, a.staffID, a.date, a.reason)
		if err != nil {
			return err
		}
	}

	for _, r := range seedRecords {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO medical_records (id, patient_id, record_date, diagnosis, treatment, notes)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.id, r.patientID, r.recordDate, r.diagnosis, r.treatment, r.notes)
		if err != nil {
			return err
		}
	}

	return nil
}
