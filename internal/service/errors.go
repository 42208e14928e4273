package service

import "errors"

// Service-level errors mapped to responses by the handlers
var (
	ErrSlotBlocked       = errors.New("the selected time slot is unavailable")
	ErrInvalidStatus     = errors.New("unknown appointment status")
	ErrInvalidTransition = errors.New("appointment status cannot change to the requested state")
	ErrDoctorInactive    = errors.New("doctor is not accepting appointments")
	ErrDoctorMismatch    = errors.New("doctor does not belong to the selected hospital")
	ErrServiceMismatch   = errors.New("service does not belong to the selected hospital")
)
