package handler

import (
	"net/http"
	"strconv"
	"time"

	"hospital-appointment-api/internal/middleware"
	"hospital-appointment-api/internal/service"
	"hospital-appointment-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

type BlockRequest struct {
	HospitalID uint   `json:"hospital_id" binding:"required"`
	DoctorID   *uint  `json:"doctor_id"`
	Date       string `json:"date" binding:"required"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	BlockType  string `json:"block_type" binding:"omitempty,oneof=doctor maintenance emergency holiday training other"`
	Reason     string `json:"reason"`
}

// ListBlocks retrieves blocked slots visible to the acting user
func (h *ScheduleHandler) ListBlocks(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	blocks, err := h.scheduleService.ListBlocks(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"blocked_slots": blocks,
		"count":         len(blocks),
	})
}

// CreateBlock declares a blocked time window
func (h *ScheduleHandler) CreateBlock(c *gin.Context) {
	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("15:04", req.StartTime); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid start_time, expected HH:MM")
		return
	}
	if _, err := time.Parse("15:04", req.EndTime); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid end_time, expected HH:MM")
		return
	}

	actor := middleware.ActorFromContext(c)
	block, err := h.scheduleService.CreateBlock(actor, service.CreateBlockInput{
		HospitalID: req.HospitalID,
		DoctorID:   req.DoctorID,
		Date:       date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		BlockType:  req.BlockType,
		Reason:     req.Reason,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":      "Time slot blocked",
		"blocked_slot": block,
		"slots":        block.TimeSlots(),
	})
}

// DeleteBlock lifts a blocked window
func (h *ScheduleHandler) DeleteBlock(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid blocked slot ID")
		return
	}

	actor := middleware.ActorFromContext(c)
	if err := h.scheduleService.RemoveBlock(actor, uint(id)); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Blocked slot removed")
}
