package repository

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Clinic bundles one repository per entity type over a shared unit of work.
// Writes staged through any of them are committed together by SaveChanges.
type Clinic struct {
	Patients       PatientRepository
	Staff          StaffRepository
	Departments    DepartmentRepository
	Appointments   AppointmentRepository
	MedicalRecords MedicalRecordRepository

	uow *UnitOfWork
}

// NewClinic creates the five repositories over a new unit of work
func NewClinic(db *gorm.DB, logger zerolog.Logger) *Clinic {
	uow := NewUnitOfWork(db, logger)
	return &Clinic{
		Patients:       newPatientRepository(uow),
		Staff:          newStaffRepository(uow),
		Departments:    newDepartmentRepository(uow),
		Appointments:   newAppointmentRepository(uow),
		MedicalRecords: newMedicalRecordRepository(uow),
		uow:            uow,
	}
}

// SaveChanges commits every write staged through any of the repositories
func (c *Clinic) SaveChanges(ctx context.Context) error {
	return c.uow.SaveChanges(ctx)
}

// UnitOfWork returns the shared unit
func (c *Clinic) UnitOfWork() *UnitOfWork {
	return c.uow
}
