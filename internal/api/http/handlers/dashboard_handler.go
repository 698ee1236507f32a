package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-activity-service/internal/api/dto"
	"github.com/spec-kit/field-activity-service/internal/auth"
	"github.com/spec-kit/field-activity-service/internal/domain"
	"github.com/spec-kit/field-activity-service/internal/service"
)

// DashboardHandler exposes the admin statistics endpoint.
type DashboardHandler struct {
	activities *service.ActivityService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(activityService *service.ActivityService) *DashboardHandler {
	return &DashboardHandler{activities: activityService}
}

// Stats handles GET /api/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return domain.ErrMissingToken
	}

	stats, err := h.activities.DashboardStats(c.Context(), identity)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": dto.NewStatsResponse(*stats)})
}
