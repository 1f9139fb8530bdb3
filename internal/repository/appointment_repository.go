package repository

import (
	"context"

	"github.com/jbweber/homelab/clinic/internal/domain"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AppointmentRepository defines domain-specific operations for appointments
type AppointmentRepository interface {
	Repository[domain.Appointment]
	FindByPatient(ctx context.Context, patientID int64) ([]domain.Appointment, error)
	FindByStaff(ctx context.Context, staffID int64) ([]domain.Appointment, error)
}

type appointmentRepositoryImpl struct {
	*DatastoreRepository[domain.Appointment]
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB, logger zerolog.Logger) AppointmentRepository {
	return newAppointmentRepository(NewUnitOfWork(db, logger))
}

func newAppointmentRepository(uow *UnitOfWork) AppointmentRepository {
	return &appointmentRepositoryImpl{
		DatastoreRepository: NewDatastoreRepositoryWithUnit[domain.Appointment](uow),
	}
}

// FindByPatient retrieves a patient's appointments, earliest first, with
// the staff member loaded
func (r *appointmentRepositoryImpl) FindByPatient(ctx context.Context, patientID int64) ([]domain.Appointment, error) {
	return r.GetAll(ctx, Where("patient_id = ?", patientID), Preload("Staff"), OrderBy("date"))
}

// FindByStaff retrieves a staff member's appointments, earliest first, with
// the patient loaded
func (r *appointmentRepositoryImpl) FindByStaff(ctx context.Context, staffID int64) ([]domain.Appointment, error) {
	return r.GetAll(ctx, Where("staff_id = ?", staffID), Preload("Patient"), OrderBy("date"))
}
