package models

import "time"

// Booking links an authenticated user to an appointment they created.
// Anonymous bookings create an Appointment only.
type Booking struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	AppointmentID uint      `gorm:"not null;uniqueIndex" json:"appointment_id"`
	Status        string    `gorm:"size:20;default:'confirmed'" json:"status"`
	BookingDate   time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"booking_date"`

	// Relationships
	User        User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

// TableName specifies the table name for Booking model
func (Booking) TableName() string {
	return "bookings"
}
