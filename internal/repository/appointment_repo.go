package repository

import (
	"errors"
	"time"

	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/models"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// CreateAppointment inserts a new appointment holding its slot. A
// duplicate on the slot unique index is returned as ErrSlotTaken.
func (r *AppointmentRepository) CreateAppointment(appt *models.Appointment) error {
	if appt.SlotHold == nil {
		hold := uint8(1)
		appt.SlotHold = &hold
	}
	err := r.db.Create(appt).Error
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return ErrSlotTaken
		}
		return err
	}
	return nil
}

// FindByEmailOrPhone returns the full appointment history matching
// either contact field. Both fields are matched deliberately so the
// eligibility rules catch patients who vary contact details.
func (r *AppointmentRepository) FindByEmailOrPhone(email, phone string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.Where("email = ? OR phone = ?", email, phone).
		Order("created_at DESC").
		Find(&appts).Error
	return appts, err
}

// GetAppointmentByID retrieves an appointment with its relations
func (r *AppointmentRepository) GetAppointmentByID(id uint) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.Preload("Hospital").Preload("Doctor").Preload("Service").
		First(&appt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &appt, nil
}

// UpdateStatus overwrites the appointment status. Cancellation also
// clears the slot hold so the slot becomes bookable again.
func (r *AppointmentRepository) UpdateStatus(id uint, status models.AppointmentStatus) error {
	updates := map[string]interface{}{"status": status}
	if status == models.StatusCancelled {
		updates["slot_hold"] = nil
	}
	return r.db.Model(&models.Appointment{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// AppointmentFilter narrows dashboard listings
type AppointmentFilter struct {
	Status models.AppointmentStatus
	Date   *time.Time
}

// ListAppointments returns appointments visible under the given scope,
// newest first
func (r *AppointmentRepository) ListAppointments(scope authz.Scope, filter AppointmentFilter) ([]models.Appointment, error) {
	switch scope.Kind {
	case authz.ScopeAll:
	case authz.ScopeHospital:
	default:
		return []models.Appointment{}, nil
	}

	q := r.db.Preload("Hospital").Preload("Doctor").Order("created_at DESC")
	if scope.Kind == authz.ScopeHospital {
		q = q.Where("hospital_id = ?", scope.HospitalID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != nil {
		q = q.Where("date = ?", filter.Date.Format("2006-01-02"))
	}

	var appts []models.Appointment
	err := q.Find(&appts).Error
	return appts, err
}

// BookedTimes returns the "HH:MM" slots already held for a doctor on a
// date. Cancelled appointments release their slot.
func (r *AppointmentRepository) BookedTimes(doctorID uint, date time.Time) ([]string, error) {
	var times []string
	err := r.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND status <> ?",
			doctorID, date.Format("2006-01-02"), models.StatusCancelled).
		Pluck("time", &times).Error
	return times, err
}
