package domain

import "time"

// Entity is implemented by every persisted record. The generic repository
// only needs to know a record's identifier and the table it lives in.
type Entity interface {
	Identifier() int64
	TableName() string
}

// Patient represents a person receiving care
type Patient struct {
	ID          int64     `gorm:"primaryKey"` // Unique identifier
	FirstName   string    `gorm:"size:50;not null"`
	LastName    string    `gorm:"size:50;not null"`
	Birthdate   time.Time // Date of birth
	Address     string    `gorm:"size:200"`
	PhoneNumber string    `gorm:"size:15"`
	Email       string    `gorm:"size:100;not null"`

	Appointments   []Appointment   `gorm:"foreignKey:PatientID"`
	MedicalRecords []MedicalRecord `gorm:"foreignKey:PatientID"`
}

func (p Patient) Identifier() int64 { return p.ID }

func (Patient) TableName() string { return "patients" }

// FullName returns the first and last name separated by a space.
func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Staff represents a member of the clinical staff
type Staff struct {
	ID           int64       `gorm:"primaryKey"` // Unique identifier
	FirstName    string      `gorm:"size:50;not null"`
	LastName     string      `gorm:"size:50;not null"`
	Role         string      `gorm:"size:50;not null"` // e.g. "Medico", "Chirurgo"
	Email        string      `gorm:"size:100;not null"`
	PhoneNumber  string      `gorm:"size:15"`
	DepartmentID int64       `gorm:"not null"` // Foreign key to Department
	Department   *Department `gorm:"foreignKey:DepartmentID"`

	Appointments []Appointment `gorm:"foreignKey:StaffID"`
}

func (s Staff) Identifier() int64 { return s.ID }

func (Staff) TableName() string { return "staffs" }

// FullName returns the first and last name separated by a space.
func (s Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Department groups staff members
type Department struct {
	ID   int64  `gorm:"primaryKey"` // Unique identifier
	Name string `gorm:"size:100;not null"`

	Staffs []Staff `gorm:"foreignKey:DepartmentID"`
}

func (d Department) Identifier() int64 { return d.ID }

func (Department) TableName() string { return "departments" }

// AppointmentStatus is the derived state of an appointment's cancellation flag
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCanceled  AppointmentStatus = "canceled"
)

// Appointment represents a visit between a patient and a staff member
type Appointment struct {
	ID         int64     `gorm:"primaryKey"` // Unique identifier
	PatientID  int64     `gorm:"not null"`   // Foreign key to Patient
	Patient    *Patient  `gorm:"foreignKey:PatientID"`
	StaffID    int64     `gorm:"not null"` // Foreign key to Staff
	Staff      *Staff    `gorm:"foreignKey:StaffID"`
	Date       time.Time `gorm:"not null"`
	Reason     string    `gorm:"size:400"`
	IsCanceled bool      `gorm:"not null;default:false"`
}

func (a Appointment) Identifier() int64 { return a.ID }

func (Appointment) TableName() string { return "appointments" }

// Schedule marks the appointment as scheduled. Patient and staff references
// are not checked; callers keep them consistent.
func (a *Appointment) Schedule() {
	a.IsCanceled = false
}

// Cancel marks the appointment as canceled.
func (a *Appointment) Cancel() {
	a.IsCanceled = true
}

// Status reports the appointment state derived from the cancellation flag.
func (a Appointment) Status() AppointmentStatus {
	if a.IsCanceled {
		return AppointmentCanceled
	}
	return AppointmentScheduled
}

// MedicalRecord is a dated diagnosis and treatment entry for a patient
type MedicalRecord struct {
	ID         int64     `gorm:"primaryKey"` // Unique identifier
	PatientID  int64     `gorm:"not null"`   // Foreign key to Patient
	Patient    *Patient  `gorm:"foreignKey:PatientID"`
	RecordDate time.Time `gorm:"not null"`
	Diagnosis  string    `gorm:"size:400"`
	Treatment  string    `gorm:"size:400"`
	Notes      Notes     `gorm:"type:text"` // Stored as a single ';'-joined column
}

func (m MedicalRecord) Identifier() int64 { return m.ID }

func (MedicalRecord) TableName() string { return "medical_records" }

// AddNote appends a note after any existing ones.
func (m *MedicalRecord) AddNote(note string) {
	m.Notes = append(m.Notes, note)
}
