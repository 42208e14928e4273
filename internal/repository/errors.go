package repository

import "errors"

// Sentinel errors shared across repositories so services and handlers
// can map them to responses with errors.Is.
var (
	ErrHospitalNotFound    = errors.New("hospital not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrServiceNotFound     = errors.New("service not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrBlockNotFound       = errors.New("blocked time slot not found")
	ErrUserNotFound        = errors.New("user not found")

	// ErrSlotTaken is raised when the slot unique index
	// rejects an insert. This is the storage-level double-booking guard.
	ErrSlotTaken = errors.New("time slot is no longer available")
)
