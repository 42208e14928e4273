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

type HospitalHandler struct {
	hospitalService *service.HospitalService
}

func NewHospitalHandler(hospitalService *service.HospitalService) *HospitalHandler {
	return &HospitalHandler{
		hospitalService: hospitalService,
	}
}

type HospitalRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Address     string `json:"address" binding:"omitempty,max=300"`
	City        string `json:"city" binding:"omitempty,max=100"`
	Location    string `json:"location" binding:"omitempty,max=200"`
	Description string `json:"description"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=20"`
	Email       string `json:"email" binding:"omitempty,email"`
	Website     string `json:"website" binding:"omitempty,url"`
}

// List retrieves hospitals visible to the acting user on the dashboard
func (h *HospitalHandler) List(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	hospitals, err := h.hospitalService.ListHospitals(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// Create creates a new hospital (system admin only)
func (h *HospitalHandler) Create(c *gin.Context) {
	var req HospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	actor := middleware.ActorFromContext(c)
	hospital := hospitalFromRequest(&req)

	if err := h.hospitalService.CreateHospital(actor, hospital); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "Hospital created successfully",
		"hospital": hospital,
	})
}

// Update updates an existing hospital (system admin only)
func (h *HospitalHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid hospital ID")
		return
	}

	var req HospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	actor := middleware.ActorFromContext(c)
	hospital := hospitalFromRequest(&req)
	hospital.ID = uint(id)

	if err := h.hospitalService.UpdateHospital(actor, hospital); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "Hospital updated successfully",
		"hospital": hospital,
	})
}

// Delete soft deletes a hospital (system admin only)
func (h *HospitalHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid hospital ID")
		return
	}

	actor := middleware.ActorFromContext(c)
	if err := h.hospitalService.DeleteHospital(actor, uint(id)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Hospital deleted successfully")
}

func hospitalFromRequest(req *HospitalRequest) *models.Hospital {
	return &models.Hospital{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		Location:    req.Location,
		Description: req.Description,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Website:     req.Website,
	}
}

type ServiceRequest struct {
	HospitalID  uint   `json:"hospital_id" binding:"required"`
	Name        string `json:"name" binding:"required,max=150"`
	Description string `json:"description"`
	Duration    int    `json:"duration" binding:"omitempty,min=5,max=480"`
}

// ListServices retrieves services visible to the acting user
func (h *HospitalHandler) ListServices(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	services, err := h.hospitalService.ListServices(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"services": services,
		"count":    len(services),
	})
}

// CreateService adds a service to a hospital
func (h *HospitalHandler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	actor := middleware.ActorFromContext(c)
	svc := &models.Service{
		HospitalID:  req.HospitalID,
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
	}

	if err := h.hospitalService.CreateService(actor, svc); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Service created successfully",
		"service": svc,
	})
}

// UpdateService updates a service
func (h *HospitalHandler) UpdateService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid service ID")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	actor := middleware.ActorFromContext(c)
	svc := &models.Service{
		ID:          uint(id),
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
	}

	if err := h.hospitalService.UpdateService(actor, svc); err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Service updated successfully",
		"service": svc,
	})
}

// DeleteService deactivates a service
func (h *HospitalHandler) DeleteService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid service ID")
		return
	}

	actor := middleware.ActorFromContext(c)
	if err := h.hospitalService.RemoveService(actor, uint(id)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Service removed successfully")
}
