// Package booking holds the pure eligibility rules that gate new
// appointment creation.
package booking

import (
	"errors"
	"time"

	"hospital-appointment-api/internal/models"
)

// CooldownPeriod is the wall-clock window after a confirmed or completed
// appointment during which the same patient may not book again.
const CooldownPeriod = 30 * 24 * time.Hour

// Eligibility rejections surfaced to the patient
var (
	ErrPendingAppointment = errors.New("you already have a pending appointment; please wait for it to be processed")
	ErrCooldownActive     = errors.New("you booked an appointment within the last 30 days; please wait before booking again")
)

// Evaluate decides whether a patient with the given appointment history
// may create a new booking. History must contain every appointment
// matching the patient's email OR phone; matching on either field is an
// anti-abuse measure against patients varying contact details between
// bookings.
//
// Rules apply in order, first failing rule wins:
//  1. any pending appointment blocks a new booking;
//  2. any confirmed or completed appointment created strictly within
//     the last 30 days blocks a new booking. At exactly 30 days the
//     cooldown has lapsed.
//
// The caller performs the subsequent insert separately; two concurrent
// requests for the same identity can both pass this check. The slot
// unique index remains the hard double-booking guarantee.
func Evaluate(history []models.Appointment, now time.Time) error {
	for _, appt := range history {
		if appt.Status == models.StatusPending {
			return ErrPendingAppointment
		}
	}

	cutoff := now.Add(-CooldownPeriod)
	for _, appt := range history {
		if appt.Status != models.StatusConfirmed && appt.Status != models.StatusCompleted {
			continue
		}
		if appt.CreatedAt.After(cutoff) {
			return ErrCooldownActive
		}
	}

	return nil
}
