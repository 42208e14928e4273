package repository

import (
	"hospital-appointment-api/internal/models"

	"gorm.io/gorm"
)

// ManagementRecorder is the single audit sink for management mutations.
// Services call it once per successful mutation; rows are append-only.
type ManagementRecorder interface {
	RecordDoctor(doctorID uint, managerID *uint, action, notes string) error
	RecordHospital(hospitalID uint, managerID *uint, action, notes string) error
}

type ManagementRepository struct {
	db *gorm.DB
}

func NewManagementRepo(db *gorm.DB) *ManagementRepository {
	return &ManagementRepository{db: db}
}

// RecordDoctor appends a doctor management audit entry
func (r *ManagementRepository) RecordDoctor(doctorID uint, managerID *uint, action, notes string) error {
	entry := &models.DoctorManagement{
		DoctorID:  doctorID,
		ManagerID: managerID,
		Action:    action,
		Notes:     notes,
	}
	return r.db.Create(entry).Error
}

// RecordHospital appends a hospital management audit entry
func (r *ManagementRepository) RecordHospital(hospitalID uint, managerID *uint, action, notes string) error {
	entry := &models.HospitalManagement{
		HospitalID: hospitalID,
		ManagerID:  managerID,
		Action:     action,
		Notes:      notes,
	}
	return r.db.Create(entry).Error
}

// RecentDoctorActivity returns the latest doctor management entries
func (r *ManagementRepository) RecentDoctorActivity(limit int) ([]models.DoctorManagement, error) {
	var entries []models.DoctorManagement
	err := r.db.Preload("Doctor").Order("timestamp DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// RecentHospitalActivity returns the latest hospital management entries
func (r *ManagementRepository) RecentHospitalActivity(limit int) ([]models.HospitalManagement, error) {
	var entries []models.HospitalManagement
	err := r.db.Preload("Hospital").Order("timestamp DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
