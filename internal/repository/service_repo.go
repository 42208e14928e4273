package repository

import (
	"errors"

	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/models"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// GetServicesByHospital retrieves active services for a hospital
func (r *ServiceRepository) GetServicesByHospital(hospitalID uint) ([]models.Service, error) {
	var services []models.Service
	err := r.db.Where("hospital_id = ? AND is_active = ?", hospitalID, true).
		Order("name ASC").
		Find(&services).Error
	return services, err
}

// ListServices returns services visible under the given scope
func (r *ServiceRepository) ListServices(scope authz.Scope) ([]models.Service, error) {
	q := r.db.Preload("Hospital").Order("name ASC")
	switch scope.Kind {
	case authz.ScopeAll:
	case authz.ScopeCatalog:
		q = q.Where("is_active = ?", true)
	case authz.ScopeHospital:
		q = q.Where("hospital_id = ?", scope.HospitalID)
	default:
		return []models.Service{}, nil
	}

	var services []models.Service
	err := q.Find(&services).Error
	return services, err
}

// GetServiceByID retrieves a service by ID
func (r *ServiceRepository) GetServiceByID(id uint) (*models.Service, error) {
	var svc models.Service
	err := r.db.First(&svc, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &svc, nil
}

// CreateService creates a new service
func (r *ServiceRepository) CreateService(svc *models.Service) error {
	return r.db.Create(svc).Error
}

// UpdateService updates an existing service
func (r *ServiceRepository) UpdateService(svc *models.Service) error {
	return r.db.Save(svc).Error
}

// DeactivateService sets a service inactive
func (r *ServiceRepository) DeactivateService(id uint) error {
	return r.db.Model(&models.Service{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
