package handler

import (
	"net/http"
	"strconv"
	"time"

	"hospital-appointment-api/internal/middleware"
	"hospital-appointment-api/internal/models"
	"hospital-appointment-api/internal/repository"
	"hospital-appointment-api/internal/service"
	"hospital-appointment-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type AppointmentHandler struct {
	appointmentService *service.AppointmentService
}

func NewAppointmentHandler(appointmentService *service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
	}
}

// CreateAppointmentRequest accepts the booking payload as JSON or form
// encoding
type CreateAppointmentRequest struct {
	FullName   string `json:"full_name" form:"full_name" binding:"required,max=200"`
	Email      string `json:"email" form:"email" binding:"required,email"`
	Phone      string `json:"phone" form:"phone" binding:"required,min=9,max=20"`
	HospitalID uint   `json:"hospital_id" form:"hospital_id" binding:"required"`
	DoctorID   uint   `json:"doctor_id" form:"doctor_id" binding:"required"`
	ServiceID  *uint  `json:"service_id" form:"service_id"`
	Date       string `json:"date" form:"date" binding:"required"`
	Time       string `json:"time" form:"time" binding:"required"`
	Reason     string `json:"reason" form:"reason"`
}

// Create books a new appointment (public endpoint). A signed-in caller
// also gets a Booking row linking their account to the appointment.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid time, expected HH:MM")
		return
	}

	var userID *uint
	if v, ok := c.Get(middleware.ContextUserID); ok {
		id := v.(uint)
		userID = &id
	}

	appt, err := h.appointmentService.Create(service.CreateAppointmentInput{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		HospitalID: req.HospitalID,
		DoctorID:   req.DoctorID,
		ServiceID:  req.ServiceID,
		Date:       date,
		Time:       req.Time,
		Reason:     req.Reason,
	}, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"appointment_id": appt.ID,
		"reference":      appt.Reference,
		"status":         appt.Status,
	})
}

// List returns appointments visible to the acting user, filterable by
// status and date
func (h *AppointmentHandler) List(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	filter := repository.AppointmentFilter{}
	if status := c.Query("status"); status != "" {
		s := models.AppointmentStatus(status)
		if !s.Valid() {
			utils.ErrorResponse(c, http.StatusBadRequest, "Unknown status filter")
			return
		}
		filter.Status = s
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.Parse(dateLayout, dateStr)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
		filter.Date = &date
	}

	appts, err := h.appointmentService.List(actor, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"appointments": appts,
		"count":        len(appts),
	})
}

// Get returns a single appointment within the actor's scope
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	actor := middleware.ActorFromContext(c)
	appt, err := h.appointmentService.Get(actor, uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, appt)
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}

// UpdateStatus transitions an appointment's lifecycle state
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	actor := middleware.ActorFromContext(c)
	appt, err := h.appointmentService.Transition(actor, uint(id), models.AppointmentStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     "Appointment status updated",
		"appointment": appt,
	})
}
