package service

import (
	"fmt"
	"log"
	"time"

	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/booking"
	"hospital-appointment-api/internal/models"
	"hospital-appointment-api/internal/notify"
	"hospital-appointment-api/internal/repository"

	"github.com/google/uuid"
)

// AppointmentStore is the persistence surface the appointment service
// consumes. *repository.AppointmentRepository satisfies it.
type AppointmentStore interface {
	CreateAppointment(appt *models.Appointment) error
	FindByEmailOrPhone(email, phone string) ([]models.Appointment, error)
	GetAppointmentByID(id uint) (*models.Appointment, error)
	UpdateStatus(id uint, status models.AppointmentStatus) error
	ListAppointments(scope authz.Scope, filter repository.AppointmentFilter) ([]models.Appointment, error)
	BookedTimes(doctorID uint, date time.Time) ([]string, error)
}

// HospitalStore resolves hospitals referenced by a booking
type HospitalStore interface {
	GetHospitalByID(id uint) (*models.Hospital, error)
}

// DoctorStore resolves doctors referenced by a booking
type DoctorStore interface {
	GetDoctorByID(id uint) (*models.Doctor, error)
}

// ServiceStore resolves services referenced by a booking
type ServiceStore interface {
	GetServiceByID(id uint) (*models.Service, error)
}

// BlockStore exposes active blocked windows for slot checking
type BlockStore interface {
	GetActiveBlocks(hospitalID uint, date time.Time) ([]models.BlockedTimeSlot, error)
}

// BookingStore records the user/appointment link
type BookingStore interface {
	CreateBooking(b *models.Booking) error
}

type AppointmentService struct {
	appointments AppointmentStore
	hospitals    HospitalStore
	doctors      DoctorStore
	services     ServiceStore
	blocks       BlockStore
	bookings     BookingStore
	notifier     notify.Notifier

	// now is swappable in tests
	now func() time.Time
}

func NewAppointmentService(
	appointments AppointmentStore,
	hospitals HospitalStore,
	doctors DoctorStore,
	services ServiceStore,
	blocks BlockStore,
	bookings BookingStore,
	notifier notify.Notifier,
) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		hospitals:    hospitals,
		doctors:      doctors,
		services:     services,
		blocks:       blocks,
		bookings:     bookings,
		notifier:     notifier,
		now:          time.Now,
	}
}

// CreateAppointmentInput is the validated booking payload
type CreateAppointmentInput struct {
	FullName   string
	Email      string
	Phone      string
	HospitalID uint
	DoctorID   uint
	ServiceID  *uint
	Date       time.Time
	Time       string
	Reason     string
}

// Create books a new appointment for a patient. UserID is the
// authenticated caller if any; it links a Booking row to the
// appointment. The eligibility check and the insert are separate steps,
// so two simultaneous requests for one identity can both pass the
// check; the slot unique index still prevents any double booking.
func (s *AppointmentService) Create(input CreateAppointmentInput, userID *uint) (*models.Appointment, error) {
	hospital, err := s.hospitals.GetHospitalByID(input.HospitalID)
	if err != nil {
		return nil, err
	}

	doctor, err := s.doctors.GetDoctorByID(input.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.IsActive {
		return nil, ErrDoctorInactive
	}
	if doctor.HospitalID != hospital.ID {
		return nil, ErrDoctorMismatch
	}

	var svc *models.Service
	if input.ServiceID != nil {
		svc, err = s.services.GetServiceByID(*input.ServiceID)
		if err != nil {
			return nil, err
		}
		if svc.HospitalID != hospital.ID {
			return nil, ErrServiceMismatch
		}
	}

	blocks, err := s.blocks.GetActiveBlocks(hospital.ID, input.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to check blocked slots: %w", err)
	}
	for i := range blocks {
		if blocks[i].Covers(doctor.ID, input.Time) {
			return nil, ErrSlotBlocked
		}
	}

	history, err := s.appointments.FindByEmailOrPhone(input.Email, input.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking history: %w", err)
	}
	if err := booking.Evaluate(history, s.now()); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		Reference:  uuid.New().String(),
		FullName:   input.FullName,
		Email:      input.Email,
		Phone:      input.Phone,
		HospitalID: hospital.ID,
		DoctorID:   doctor.ID,
		ServiceID:  input.ServiceID,
		Date:       input.Date,
		Time:       input.Time,
		Reason:     input.Reason,
		Status:     models.StatusPending,
	}
	if err := s.appointments.CreateAppointment(appt); err != nil {
		return nil, err
	}

	if userID != nil {
		b := &models.Booking{UserID: *userID, AppointmentID: appt.ID}
		if err := s.bookings.CreateBooking(b); err != nil {
			// The appointment stands; the booking link is secondary
			log.Printf("Warning: failed to link booking for user %d: %v", *userID, err)
		}
	}

	appt.Hospital = *hospital
	appt.Doctor = *doctor
	if s.notifier != nil {
		go s.notifier.AppointmentCreated(appt)
	}

	return appt, nil
}

// Transition moves an appointment to a new lifecycle state. The actor
// must be an admin, or hospital_admin/staff of the appointment's
// hospital. Nothing is mutated on a failed check.
func (s *AppointmentService) Transition(actor authz.Actor, id uint, next models.AppointmentStatus) (*models.Appointment, error) {
	if !next.Valid() {
		return nil, ErrInvalidStatus
	}

	appt, err := s.appointments.GetAppointmentByID(id)
	if err != nil {
		return nil, err
	}

	if !authz.CanManageHospital(actor, appt.HospitalID) {
		return nil, authz.ErrPermissionDenied
	}

	if !appt.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	if err := s.appointments.UpdateStatus(appt.ID, next); err != nil {
		return nil, err
	}
	appt.Status = next
	return appt, nil
}

// List returns the appointments the actor may see
func (s *AppointmentService) List(actor authz.Actor, filter repository.AppointmentFilter) ([]models.Appointment, error) {
	scope, err := authz.ScopeFor(actor, authz.ResourceAppointments)
	if err != nil {
		return nil, err
	}
	return s.appointments.ListAppointments(scope, filter)
}

// Get returns one appointment if the actor's scope covers it
func (s *AppointmentService) Get(actor authz.Actor, id uint) (*models.Appointment, error) {
	appt, err := s.appointments.GetAppointmentByID(id)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageHospital(actor, appt.HospitalID) {
		return nil, authz.ErrPermissionDenied
	}
	return appt, nil
}
