package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Valid reports whether s is a known appointment status
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// CanTransitionTo reports whether the lifecycle permits moving from s to next.
// pending -> {confirmed, cancelled}; confirmed -> {completed, cancelled};
// cancelled and completed are terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

// Appointment represents a patient appointment request. Patient contact
// fields are captured directly and are not tied to a user account.
// The (doctor_id, date, time, slot_hold) unique index is the
// double-booking guard; cancellation clears SlotHold so the slot can be
// rebooked.
type Appointment struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	Reference  string            `gorm:"size:36;uniqueIndex" json:"reference"`
	FullName   string            `gorm:"size:200;not null" json:"full_name"`
	Email      string            `gorm:"size:254;not null;index" json:"email"`
	Phone      string            `gorm:"size:20;not null;index" json:"phone"`
	HospitalID uint              `gorm:"not null;index" json:"hospital_id"`
	DoctorID   uint              `gorm:"not null;uniqueIndex:idx_doctor_slot" json:"doctor_id"`
	ServiceID  *uint             `gorm:"index" json:"service_id,omitempty"`
	Date       time.Time         `gorm:"type:date;not null;uniqueIndex:idx_doctor_slot" json:"date"`
	Time       string            `gorm:"size:20;not null;uniqueIndex:idx_doctor_slot" json:"time"`
	Reason     string            `gorm:"type:text" json:"reason,omitempty"`
	Status     AppointmentStatus `gorm:"type:enum('pending','confirmed','cancelled','completed');default:'pending'" json:"status"`
	// SlotHold is 1 while the appointment occupies its slot and NULL
	// once cancelled. NULL tuples never collide in a MySQL unique
	// index, so only live appointments contend for a slot.
	SlotHold  *uint8    `gorm:"uniqueIndex:idx_doctor_slot" json:"-"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	Hospital Hospital `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Doctor   Doctor   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Service  *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}
