package repository

import (
	"hospital-appointment-api/internal/models"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepo(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateBooking links a user to an appointment
func (r *BookingRepository) CreateBooking(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

// GetBookingsByUser retrieves a user's bookings, newest first
func (r *BookingRepository) GetBookingsByUser(userID uint, limit int) ([]models.Booking, error) {
	q := r.db.Where("user_id = ?", userID).
		Preload("Appointment").
		Preload("Appointment.Hospital").
		Preload("Appointment.Doctor").
		Order("booking_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var bookings []models.Booking
	err := q.Find(&bookings).Error
	return bookings, err
}
