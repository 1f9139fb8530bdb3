package repository

import (
	"context"

	"github.com/jbweber/homelab/clinic/internal/domain"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// MedicalRecordRepository defines domain-specific operations for medical records
type MedicalRecordRepository interface {
	Repository[domain.MedicalRecord]
	FindByPatient(ctx context.Context, patientID int64) ([]domain.MedicalRecord, error)
}

type medicalRecordRepositoryImpl struct {
	*DatastoreRepository[domain.MedicalRecord]
}

// NewMedicalRecordRepository creates a new medical record repository
func NewMedicalRecordRepository(db *gorm.DB, logger zerolog.Logger) MedicalRecordRepository {
	return newMedicalRecordRepository(NewUnitOfWork(db, logger))
}

func newMedicalRecordRepository(uow *UnitOfWork) MedicalRecordRepository {
	return &medicalRecordRepositoryImpl{
		DatastoreRepository: NewDatastoreRepositoryWithUnit[domain.MedicalRecord](uow),
	}
}

// FindByPatient retrieves a patient's records, most recent first
func (r *medicalRecordRepositoryImpl) FindByPatient(ctx context.Context, patientID int64) ([]domain.MedicalRecord, error) {
	return r.GetAll(ctx, Where("patient_id = ?", patientID), OrderBy("record_date DESC"), OrderBy("id DESC"))
}
