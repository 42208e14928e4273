package repository

import (
	"errors"

	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/models"

	"gorm.io/gorm"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepo(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// GetDoctorsByHospital retrieves active doctors for a hospital
func (r *DoctorRepository) GetDoctorsByHospital(hospitalID uint) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.Where("hospital_id = ? AND is_active = ?", hospitalID, true).
		Order("name ASC").
		Find(&doctors).Error
	return doctors, err
}

// ListDoctors returns doctors visible under the given scope
func (r *DoctorRepository) ListDoctors(scope authz.Scope) ([]models.Doctor, error) {
	q := r.db.Preload("Hospital").Order("name ASC")
	switch scope.Kind {
	case authz.ScopeAll:
	case authz.ScopeCatalog:
		q = q.Where("is_active = ?", true)
	case authz.ScopeHospital:
		q = q.Where("hospital_id = ?", scope.HospitalID)
	default:
		return []models.Doctor{}, nil
	}

	var doctors []models.Doctor
	err := q.Find(&doctors).Error
	return doctors, err
}

// GetDoctorByID retrieves a doctor by ID
func (r *DoctorRepository) GetDoctorByID(id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.Preload("Hospital").First(&doctor, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

// CreateDoctor creates a new doctor
func (r *DoctorRepository) CreateDoctor(doctor *models.Doctor) error {
	return r.db.Create(doctor).Error
}

// UpdateDoctor updates an existing doctor
func (r *DoctorRepository) UpdateDoctor(doctor *models.Doctor) error {
	return r.db.Save(doctor).Error
}

// DeactivateDoctor sets a doctor inactive without deleting history
func (r *DoctorRepository) DeactivateDoctor(id uint) error {
	return r.db.Model(&models.Doctor{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// DeleteDoctor removes a doctor record
func (r *DoctorRepository) DeleteDoctor(id uint) error {
	return r.db.Delete(&models.Doctor{}, id).Error
}

// CountDoctors counts active doctors for the dashboard summary
func (r *DoctorRepository) CountDoctors() (int64, error) {
	var count int64
	err := r.db.Model(&models.Doctor{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
