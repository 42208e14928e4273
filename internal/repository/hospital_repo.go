package repository

import (
	"errors"

	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/models"

	"gorm.io/gorm"
)

type HospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepo(db *gorm.DB) *HospitalRepository {
	return &HospitalRepository{db: db}
}

// GetAllHospitals retrieves all active hospitals
func (r *HospitalRepository) GetAllHospitals() ([]models.Hospital, error) {
	var hospitals []models.Hospital
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&hospitals).Error
	return hospitals, err
}

// ListHospitals returns hospitals visible under the given scope. The
// catalog scope is the same active set the public endpoints serve.
func (r *HospitalRepository) ListHospitals(scope authz.Scope) ([]models.Hospital, error) {
	switch scope.Kind {
	case authz.ScopeAll, authz.ScopeCatalog:
		return r.GetAllHospitals()
	case authz.ScopeHospital:
		var hospitals []models.Hospital
		err := r.db.Where("id = ? AND is_active = ?", scope.HospitalID, true).
			Find(&hospitals).Error
		return hospitals, err
	}
	return []models.Hospital{}, nil
}

// GetHospitalByID retrieves an active hospital by ID
func (r *HospitalRepository) GetHospitalByID(id uint) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHospitalNotFound
		}
		return nil, err
	}
	return &hospital, nil
}

// GetHospitalDetail retrieves a hospital with its active doctors and services
func (r *HospitalRepository) GetHospitalDetail(id uint) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.Where("id = ? AND is_active = ?", id, true).
		Preload("Doctors", "is_active = ?", true).
		Preload("Services", "is_active = ?", true).
		First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHospitalNotFound
		}
		return nil, err
	}
	return &hospital, nil
}

// CreateHospital creates a new hospital
func (r *HospitalRepository) CreateHospital(hospital *models.Hospital) error {
	return r.db.Create(hospital).Error
}

// UpdateHospital updates an existing hospital
func (r *HospitalRepository) UpdateHospital(hospital *models.Hospital) error {
	return r.db.Save(hospital).Error
}

// SoftDeleteHospital soft deletes a hospital by setting is_active to false
func (r *HospitalRepository) SoftDeleteHospital(id uint) error {
	return r.db.Model(&models.Hospital{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// CountHospitals counts active hospitals for the dashboard summary
func (r *HospitalRepository) CountHospitals() (int64, error) {
	var count int64
	err := r.db.Model(&models.Hospital{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
