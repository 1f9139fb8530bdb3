package repository

import (
	"context"

	"github.com/jbweber/homelab/clinic/internal/domain"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// PatientRepository defines domain-specific operations for patients
type PatientRepository interface {
	Repository[domain.Patient]
	FindByEmail(ctx context.Context, email string) (*domain.Patient, error)
}

// patientRepositoryImpl implements PatientRepository
type patientRepositoryImpl struct {
	*DatastoreRepository[domain.Patient]
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *gorm.DB, logger zerolog.Logger) PatientRepository {
	return newPatientRepository(NewUnitOfWork(db, logger))
}

func newPatientRepository(uow *UnitOfWork) PatientRepository {
	return &patientRepositoryImpl{
		DatastoreRepository: NewDatastoreRepositoryWithUnit[domain.Patient](uow),
	}
}

// FindByEmail retrieves the first patient with the given email, or nil
func (r *patientRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Patient, error) {
	patients, err := r.GetAll(ctx, Where("email = ?", email), OrderBy("id"), Paginate(0, 1))
	if err != nil {
		return nil, err
	}
	if len(patients) == 0 {
		return nil, nil
	}
	return &patients[0], nil
}
