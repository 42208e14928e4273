package service

import (
	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/models"
	"hospital-appointment-api/internal/repository"
)

type DashboardService struct {
	hospitalRepo    *repository.HospitalRepository
	doctorRepo      *repository.DoctorRepository
	appointmentRepo *repository.AppointmentRepository
	bookingRepo     *repository.BookingRepository
	managementRepo  *repository.ManagementRepository
}

func NewDashboardService(
	hospitalRepo *repository.HospitalRepository,
	doctorRepo *repository.DoctorRepository,
	appointmentRepo *repository.AppointmentRepository,
	bookingRepo *repository.BookingRepository,
	managementRepo *repository.ManagementRepository,
) *DashboardService {
	return &DashboardService{
		hospitalRepo:    hospitalRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		bookingRepo:     bookingRepo,
		managementRepo:  managementRepo,
	}
}

// Summary is the dashboard landing payload
type Summary struct {
	HospitalsCount   int64                       `json:"hospitals_count"`
	DoctorsCount     int64                       `json:"doctors_count"`
	Appointments     []models.Appointment        `json:"appointments"`
	RecentBookings   []models.Booking            `json:"recent_bookings"`
	DoctorActivity   []models.DoctorManagement   `json:"doctor_activity"`
	HospitalActivity []models.HospitalManagement `json:"hospital_activity"`
}

// Summarize builds the dashboard overview for an actor: global counts,
// the actor's recent bookings, their scoped appointment list and the
// latest management activity.
func (s *DashboardService) Summarize(actor authz.Actor) (*Summary, error) {
	hospitals, err := s.hospitalRepo.CountHospitals()
	if err != nil {
		return nil, err
	}
	doctors, err := s.doctorRepo.CountDoctors()
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		HospitalsCount: hospitals,
		DoctorsCount:   doctors,
	}

	summary.RecentBookings, err = s.bookingRepo.GetBookingsByUser(actor.UserID, 5)
	if err != nil {
		return nil, err
	}

	scope, err := authz.ScopeFor(actor, authz.ResourceAppointments)
	if err == nil {
		summary.Appointments, err = s.appointmentRepo.ListAppointments(scope, repository.AppointmentFilter{})
		if err != nil {
			return nil, err
		}
	} else {
		summary.Appointments = []models.Appointment{}
	}

	if actor.Role == authz.RoleAdmin || actor.Role == authz.RoleHospitalAdmin {
		summary.DoctorActivity, err = s.managementRepo.RecentDoctorActivity(10)
		if err != nil {
			return nil, err
		}
		summary.HospitalActivity, err = s.managementRepo.RecentHospitalActivity(10)
		if err != nil {
			return nil, err
		}
	}

	return summary, nil
}
