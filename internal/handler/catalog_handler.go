package handler

import (
	"net/http"
	"strconv"
	"time"

	"hospital-appointment-api/internal/service"
	"hospital-appointment-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public browse surface: hospitals, doctors,
// services and bookable slots. No authentication required.
type CatalogHandler struct {
	hospitalService *service.HospitalService
	doctorService   *service.DoctorService
	scheduleService *service.ScheduleService
}

func NewCatalogHandler(
	hospitalService *service.HospitalService,
	doctorService *service.DoctorService,
	scheduleService *service.ScheduleService,
) *CatalogHandler {
	return &CatalogHandler{
		hospitalService: hospitalService,
		doctorService:   doctorService,
		scheduleService: scheduleService,
	}
}

// Hospitals lists active hospitals
func (h *CatalogHandler) Hospitals(c *gin.Context) {
	hospitals, err := h.hospitalService.PublicHospitals()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch hospitals")
		return
	}
	utils.SuccessResponse(c, gin.H{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// HospitalDetail returns one hospital with its doctors and services
func (h *CatalogHandler) HospitalDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid hospital ID")
		return
	}

	hospital, err := h.hospitalService.PublicHospitalDetail(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, hospital)
}

// Doctors lists the active doctors of a hospital
func (h *CatalogHandler) Doctors(c *gin.Context) {
	hospitalID, err := strconv.ParseUint(c.Query("hospital_id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "hospital_id query parameter required")
		return
	}

	doctors, err := h.doctorService.PublicDoctorsByHospital(uint(hospitalID))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// Services lists the active services of a hospital
func (h *CatalogHandler) Services(c *gin.Context) {
	hospitalID, err := strconv.ParseUint(c.Query("hospital_id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "hospital_id query parameter required")
		return
	}

	services, err := h.hospitalService.PublicServices(uint(hospitalID))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"services": services,
		"count":    len(services),
	})
}

// Availability returns the bookable "HH:MM" slots for a doctor on a
// date, after removing blocked and already-held slots
func (h *CatalogHandler) Availability(c *gin.Context) {
	doctorID, err := strconv.ParseUint(c.Query("doctor_id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "doctor_id query parameter required")
		return
	}
	date, err := time.Parse(dateLayout, c.Query("date"))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	slots, err := h.scheduleService.AvailableSlots(uint(doctorID), date)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{
		"doctor_id": doctorID,
		"date":      date.Format(dateLayout),
		"slots":     slots,
	})
}
