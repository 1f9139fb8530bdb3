package repository

import (
	"context"

	"github.com/jbweber/homelab/clinic/internal/domain"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// StaffRepository defines domain-specific operations for staff members
type StaffRepository interface {
	Repository[domain.Staff]
	FindByDepartment(ctx context.Context, departmentID int64) ([]domain.Staff, error)
}

type staffRepositoryImpl struct {
	*DatastoreRepository[domain.Staff]
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *gorm.DB, logger zerolog.Logger) StaffRepository {
	return newStaffRepository(NewUnitOfWork(db, logger))
}

func newStaffRepository(uow *UnitOfWork) StaffRepository {
	return &staffRepositoryImpl{
		DatastoreRepository: NewDatastoreRepositoryWithUnit[domain.Staff](uow),
	}
}

// FindByDepartment retrieves the staff of a department ordered by ID
func (r *staffRepositoryImpl) FindByDepartment(ctx context.Context, departmentID int64) ([]domain.Staff, error) {
	return r.GetAll(ctx, Where("department_id = ?", departmentID), OrderBy("id"))
}
