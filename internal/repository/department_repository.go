package repository

import (
	"context"

	"github.com/jbweber/homelab/clinic/internal/domain"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// DepartmentRepository defines domain-specific operations for departments
type DepartmentRepository interface {
	Repository[domain.Department]
	FindByName(ctx context.Context, name string) (*domain.Department, error)
}

type departmentRepositoryImpl struct {
	*DatastoreRepository[domain.Department]
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB, logger zerolog.Logger) DepartmentRepository {
	return newDepartmentRepository(NewUnitOfWork(db, logger))
}

func newDepartmentRepository(uow *UnitOfWork) DepartmentRepository {
	return &departmentRepositoryImpl{
		DatastoreRepository: NewDatastoreRepositoryWithUnit[domain.Department](uow),
	}
}

// FindByName retrieves a department and its staff by name, or nil
func (r *departmentRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Department, error) {
	departments, err := r.GetAll(ctx, Where("name = ?", name), Preload("Staffs"), OrderBy("id"), Paginate(0, 1))
	if err != nil {
		return nil, err
	}
	if len(departments) == 0 {
		return nil, nil
	}
	return &departments[0], nil
}
