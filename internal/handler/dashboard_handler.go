package handler

import (
	"hospital-appointment-api/internal/middleware"
	"hospital-appointment-api/internal/service"
	"hospital-appointment-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the authenticated overview pages: summary,
// user administration and the caller's bookings.
type DashboardHandler struct {
	dashboardService *service.DashboardService
	userService      *service.UserService
}

func NewDashboardHandler(dashboardService *service.DashboardService, userService *service.UserService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		userService:      userService,
	}
}

// Summary returns the dashboard landing payload for the acting user
func (h *DashboardHandler) Summary(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	summary, err := h.dashboardService.Summarize(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, summary)
}

// ListUsers returns the user accounts the acting user may administer
func (h *DashboardHandler) ListUsers(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	users, err := h.userService.ListUsers(actor)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"users": users,
		"count": len(users),
	})
}

// MyBookings returns the caller's own bookings
func (h *DashboardHandler) MyBookings(c *gin.Context) {
	actor := middleware.ActorFromContext(c)

	bookings, err := h.userService.MyBookings(actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}
