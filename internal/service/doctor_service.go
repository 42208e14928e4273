package service

import (
	"fmt"

	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/models"
	"hospital-appointment-api/internal/repository"
)

// DoctorRepo is the persistence surface the doctor service consumes.
// *repository.DoctorRepository satisfies it.
type DoctorRepo interface {
	GetDoctorsByHospital(hospitalID uint) ([]models.Doctor, error)
	ListDoctors(scope authz.Scope) ([]models.Doctor, error)
	GetDoctorByID(id uint) (*models.Doctor, error)
	CreateDoctor(doctor *models.Doctor) error
	UpdateDoctor(doctor *models.Doctor) error
	DeactivateDoctor(id uint) error
	DeleteDoctor(id uint) error
}

type DoctorService struct {
	doctorRepo   DoctorRepo
	hospitalRepo HospitalStore
	recorder     repository.ManagementRecorder
}

func NewDoctorService(
	doctorRepo DoctorRepo,
	hospitalRepo HospitalStore,
	recorder repository.ManagementRecorder,
) *DoctorService {
	return &DoctorService{
		doctorRepo:   doctorRepo,
		hospitalRepo: hospitalRepo,
		recorder:     recorder,
	}
}

// PublicDoctorsByHospital returns the active doctors of one hospital
// with their availability, for the booking form
func (s *DoctorService) PublicDoctorsByHospital(hospitalID uint) ([]models.Doctor, error) {
	if _, err := s.hospitalRepo.GetHospitalByID(hospitalID); err != nil {
		return nil, err
	}
	return s.doctorRepo.GetDoctorsByHospital(hospitalID)
}

// ListDoctors returns doctors visible to the actor
func (s *DoctorService) ListDoctors(actor authz.Actor) ([]models.Doctor, error) {
	scope, err := authz.ScopeFor(actor, authz.ResourceDoctors)
	if err != nil {
		return nil, err
	}
	return s.doctorRepo.ListDoctors(scope)
}

// CreateDoctor adds a doctor to a hospital the actor manages and
// records the mutation in the doctor management log
func (s *DoctorService) CreateDoctor(actor authz.Actor, doctor *models.Doctor) error {
	if !authz.CanManageHospital(actor, doctor.HospitalID) {
		return authz.ErrPermissionDenied
	}
	if _, err := s.hospitalRepo.GetHospitalByID(doctor.HospitalID); err != nil {
		return err
	}
	doctor.IsActive = true
	if err := s.doctorRepo.CreateDoctor(doctor); err != nil {
		return err
	}
	_ = s.recorder.RecordDoctor(doctor.ID, &actor.UserID, models.ActionAdded,
		fmt.Sprintf("Doctor %s was added to the system", doctor.Name))
	return nil
}

// UpdateDoctor updates a doctor on a hospital the actor manages.
// A doctor cannot be moved between hospitals through an update.
func (s *DoctorService) UpdateDoctor(actor authz.Actor, doctor *models.Doctor) error {
	existing, err := s.doctorRepo.GetDoctorByID(doctor.ID)
	if err != nil {
		return err
	}
	if !authz.CanManageHospital(actor, existing.HospitalID) {
		return authz.ErrPermissionDenied
	}
	doctor.HospitalID = existing.HospitalID
	doctor.CreatedAt = existing.CreatedAt
	doctor.IsActive = existing.IsActive
	if err := s.doctorRepo.UpdateDoctor(doctor); err != nil {
		return err
	}
	_ = s.recorder.RecordDoctor(doctor.ID, &actor.UserID, models.ActionUpdated,
		fmt.Sprintf("Doctor %s was updated", doctor.Name))
	return nil
}

// DeactivateDoctor hides a doctor from the catalog without losing their
// appointment history
func (s *DoctorService) DeactivateDoctor(actor authz.Actor, id uint) error {
	existing, err := s.doctorRepo.GetDoctorByID(id)
	if err != nil {
		return err
	}
	if !authz.CanManageHospital(actor, existing.HospitalID) {
		return authz.ErrPermissionDenied
	}
	if err := s.doctorRepo.DeactivateDoctor(id); err != nil {
		return err
	}
	_ = s.recorder.RecordDoctor(id, &actor.UserID, models.ActionDeactivated,
		fmt.Sprintf("Doctor %s was deactivated", existing.Name))
	return nil
}

// RemoveDoctor deletes a doctor record
func (s *DoctorService) RemoveDoctor(actor authz.Actor, id uint) error {
	existing, err := s.doctorRepo.GetDoctorByID(id)
	if err != nil {
		return err
	}
	if !authz.CanManageHospital(actor, existing.HospitalID) {
		return authz.ErrPermissionDenied
	}
	if err := s.doctorRepo.DeleteDoctor(id); err != nil {
		return err
	}
	_ = s.recorder.RecordDoctor(id, &actor.UserID, models.ActionRemoved,
		fmt.Sprintf("Doctor %s was removed", existing.Name))
	return nil
}
