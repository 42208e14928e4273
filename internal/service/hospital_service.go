package service

import (
	"fmt"

	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/models"
	"hospital-appointment-api/internal/repository"
)

type HospitalService struct {
	hospitalRepo *repository.HospitalRepository
	serviceRepo  *repository.ServiceRepository
	recorder     repository.ManagementRecorder
}

func NewHospitalService(
	hospitalRepo *repository.HospitalRepository,
	serviceRepo *repository.ServiceRepository,
	recorder repository.ManagementRecorder,
) *HospitalService {
	return &HospitalService{
		hospitalRepo: hospitalRepo,
		serviceRepo:  serviceRepo,
		recorder:     recorder,
	}
}

// PublicHospitals returns the catalog projection served to patients
func (s *HospitalService) PublicHospitals() ([]models.HospitalSummary, error) {
	hospitals, err := s.hospitalRepo.GetAllHospitals()
	if err != nil {
		return nil, err
	}
	summaries := make([]models.HospitalSummary, 0, len(hospitals))
	for _, h := range hospitals {
		summaries = append(summaries, models.HospitalSummary{
			ID:          h.ID,
			Name:        h.Name,
			Location:    h.Location,
			Description: h.Description,
			PhoneNumber: h.PhoneNumber,
		})
	}
	return summaries, nil
}

// PublicHospitalDetail returns a hospital with its active doctors and
// services for the detail page
func (s *HospitalService) PublicHospitalDetail(id uint) (*models.Hospital, error) {
	return s.hospitalRepo.GetHospitalDetail(id)
}

// PublicServices returns the active services of one hospital
func (s *HospitalService) PublicServices(hospitalID uint) ([]models.Service, error) {
	if _, err := s.hospitalRepo.GetHospitalByID(hospitalID); err != nil {
		return nil, err
	}
	return s.serviceRepo.GetServicesByHospital(hospitalID)
}

// ListHospitals returns hospitals visible to the actor on the dashboard
func (s *HospitalService) ListHospitals(actor authz.Actor) ([]models.Hospital, error) {
	scope, err := authz.ScopeFor(actor, authz.ResourceHospitals)
	if err != nil {
		return nil, err
	}
	return s.hospitalRepo.ListHospitals(scope)
}

// CreateHospital creates a hospital (system admin only) and records the
// mutation in the hospital management log
func (s *HospitalService) CreateHospital(actor authz.Actor, hospital *models.Hospital) error {
	if !authz.CanWriteHospitals(actor) {
		return authz.ErrPermissionDenied
	}
	hospital.IsActive = true
	if err := s.hospitalRepo.CreateHospital(hospital); err != nil {
		return err
	}
	_ = s.recorder.RecordHospital(hospital.ID, &actor.UserID, models.ActionAdded,
		fmt.Sprintf("Hospital %s was added to the system", hospital.Name))
	return nil
}

// UpdateHospital updates a hospital (system admin only)
func (s *HospitalService) UpdateHospital(actor authz.Actor, hospital *models.Hospital) error {
	if !authz.CanWriteHospitals(actor) {
		return authz.ErrPermissionDenied
	}
	existing, err := s.hospitalRepo.GetHospitalByID(hospital.ID)
	if err != nil {
		return err
	}
	hospital.CreatedAt = existing.CreatedAt
	hospital.IsActive = existing.IsActive
	if err := s.hospitalRepo.UpdateHospital(hospital); err != nil {
		return err
	}
	_ = s.recorder.RecordHospital(hospital.ID, &actor.UserID, models.ActionUpdated,
		fmt.Sprintf("Hospital %s was updated", hospital.Name))
	return nil
}

// DeleteHospital soft deletes a hospital (system admin only)
func (s *HospitalService) DeleteHospital(actor authz.Actor, id uint) error {
	if !authz.CanWriteHospitals(actor) {
		return authz.ErrPermissionDenied
	}
	hospital, err := s.hospitalRepo.GetHospitalByID(id)
	if err != nil {
		return err
	}
	if err := s.hospitalRepo.SoftDeleteHospital(id); err != nil {
		return err
	}
	_ = s.recorder.RecordHospital(id, &actor.UserID, models.ActionRemoved,
		fmt.Sprintf("Hospital %s was removed", hospital.Name))
	return nil
}

// ListServices returns services visible to the actor
func (s *HospitalService) ListServices(actor authz.Actor) ([]models.Service, error) {
	scope, err := authz.ScopeFor(actor, authz.ResourceServices)
	if err != nil {
		return nil, err
	}
	return s.serviceRepo.ListServices(scope)
}

// CreateService adds a service to a hospital the actor manages
func (s *HospitalService) CreateService(actor authz.Actor, svc *models.Service) error {
	if !authz.CanManageHospital(actor, svc.HospitalID) {
		return authz.ErrPermissionDenied
	}
	if _, err := s.hospitalRepo.GetHospitalByID(svc.HospitalID); err != nil {
		return err
	}
	svc.IsActive = true
	if svc.Duration <= 0 {
		svc.Duration = 30
	}
	return s.serviceRepo.CreateService(svc)
}

// UpdateService updates a service on a hospital the actor manages
func (s *HospitalService) UpdateService(actor authz.Actor, svc *models.Service) error {
	existing, err := s.serviceRepo.GetServiceByID(svc.ID)
	if err != nil {
		return err
	}
	if !authz.CanManageHospital(actor, existing.HospitalID) {
		return authz.ErrPermissionDenied
	}
	svc.HospitalID = existing.HospitalID
	svc.CreatedAt = existing.CreatedAt
	return s.serviceRepo.UpdateService(svc)
}

// RemoveService deactivates a service
func (s *HospitalService) RemoveService(actor authz.Actor, id uint) error {
	existing, err := s.serviceRepo.GetServiceByID(id)
	if err != nil {
		return err
	}
	if !authz.CanManageHospital(actor, existing.HospitalID) {
		return authz.ErrPermissionDenied
	}
	return s.serviceRepo.DeactivateService(id)
}
