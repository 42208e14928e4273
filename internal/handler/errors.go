package handler

import (
	"errors"
	"net/http"

	"hospital-appointment-api/internal/authz"
	"hospital-appointment-api/internal/booking"
	"hospital-appointment-api/internal/repository"
	"hospital-appointment-api/internal/service"

	"github.com/gin-gonic/gin"

	"hospital-appointment-api/pkg/utils"
)

// respondError maps domain errors onto the HTTP error taxonomy:
// eligibility and slot conflicts are 409, permission failures 403,
// missing references 404, bad input 400, everything else 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrPendingAppointment),
		errors.Is(err, booking.ErrCooldownActive),
		errors.Is(err, repository.ErrSlotTaken),
		errors.Is(err, service.ErrSlotBlocked):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())

	case errors.Is(err, authz.ErrPermissionDenied):
		utils.ErrorResponse(c, http.StatusForbidden, "Access denied")

	case errors.Is(err, repository.ErrHospitalNotFound),
		errors.Is(err, repository.ErrDoctorNotFound),
		errors.Is(err, repository.ErrServiceNotFound),
		errors.Is(err, repository.ErrAppointmentNotFound),
		errors.Is(err, repository.ErrBlockNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())

	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrDoctorInactive),
		errors.Is(err, service.ErrDoctorMismatch),
		errors.Is(err, service.ErrServiceMismatch):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())

	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
