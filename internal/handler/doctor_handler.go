package handler

import (
	"net/http"
	"strconv"

	"hospital-appointment-api/internal/middleware"
	"hospital-appointment-api/internal/models"
	"hospital-appointment-api/internal/service"
	"hospital-appointment-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	doctorService *service.DoctorService
}

func NewDoctorHandler(doctorService *service.DoctorService) *DoctorHandler {
	return &DoctorHandler{
		doctorService: doctorService,
	}
}

type DoctorRequest struct {
	HospitalID      uint              `json:"hospital_id" binding:"required"`
	Name            string            `json:"name" binding:"required,max=200"`
	Title           string            `json:"title" binding:"omitempty,max=50"`
	Specialty       string            `json:"specialty" binding:"required,max=100"`
	Bio             string            `json:"bio"`
	Education       string            `json:"education" binding:"omitempty,max=300"`
	ExperienceYears int               `json:"experience_years" binding:"omitempty,min=0,max=80"`
	Availability    map[string]string `json:"availability"`
}

// List retrieves doctors visible to the acting user
func (h *DoctorHandler) List(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	doctors, err := h.doctorService.ListDoctors(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// Create adds a doctor to a hospital
func (h *DoctorHandler) Create(c *gin.Context) {
	var req DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	actor := middleware.ActorFromContext(c)
	doctor := doctorFromRequest(&req)

	if err := h.doctorService.CreateDoctor(actor, doctor); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Doctor created successfully",
		"doctor":  doctor,
	})
}

// Update updates a doctor's profile
func (h *DoctorHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid doctor ID")
		return
	}

	var req DoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	actor := middleware.ActorFromContext(c)
	doctor := doctorFromRequest(&req)
	doctor.ID = uint(id)

	if err := h.doctorService.UpdateDoctor(actor, doctor); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Doctor updated successfully",
		"doctor":  doctor,
	})
}

// Deactivate hides a doctor from the booking catalog
func (h *DoctorHandler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid doctor ID")
		return
	}

	actor := middleware.ActorFromContext(c)
	if err := h.doctorService.DeactivateDoctor(actor, uint(id)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Doctor deactivated successfully")
}

// Delete removes a doctor record
func (h *DoctorHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid doctor ID")
		return
	}

	actor := middleware.ActorFromContext(c)
	if err := h.doctorService.RemoveDoctor(actor, uint(id)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Doctor removed successfully")
}

func doctorFromRequest(req *DoctorRequest) *models.Doctor {
	return &models.Doctor{
		HospitalID:      req.HospitalID,
		Name:            req.Name,
		Title:           req.Title,
		Specialty:       req.Specialty,
		Bio:             req.Bio,
		Education:       req.Education,
		ExperienceYears: req.ExperienceYears,
		Availability:    req.Availability,
	}
}
