package handlers

import (
	"equiptrack/internal/core/services"
	"equiptrack/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetDashboard returns role-shaped dashboard counts and the item catalog
// @Summary Get dashboard
// @Description Counts scoped to the caller's role plus the item catalog. Superadmins also get the total user count.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	role, _ := c.Locals("role").(string)

	dashboard, err := h.dashboardService.GetDashboard(c.Context(), userID, role)
	if err != nil {
		return response.InternalServerError(c, "Failed to load dashboard")
	}

	return response.Success(c, "Dashboard retrieved successfully", dashboard)
}
