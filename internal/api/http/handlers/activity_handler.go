package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-activity-service/internal/api/dto"
	"github.com/spec-kit/field-activity-service/internal/auth"
	"github.com/spec-kit/field-activity-service/internal/domain"
	"github.com/spec-kit/field-activity-service/internal/service"
)

// ActivityHandler exposes activity logging and listing endpoints.
type ActivityHandler struct {
	activities *service.ActivityService
}

// NewActivityHandler constructs handler.
func NewActivityHandler(activityService *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activityService}
}

// Log handles POST /api/log.
func (h *ActivityHandler) Log(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return domain.ErrMissingToken
	}

	var req dto.LogActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	activity, err := h.activities.LogActivity(c.Context(), identity, service.ActivityInput{
		Type:    domain.ActivityType(req.Type),
		Payload: req.Payload,
		Lat:     req.Lat,
		Lng:     req.Lng,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.LogActivityResponse{
			ID:        activity.ID,
			CreatedAt: activity.CreatedAt,
		},
	})
}

// MyLogs handles GET /api/mylogs.
func (h *ActivityHandler) MyLogs(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return domain.ErrMissingToken
	}

	activities, err := h.activities.MyLogs(c.Context(), identity)
	if err != nil {
		return err
	}

	response := make([]dto.ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		response = append(response, dto.NewActivityResponse(activity))
	}
	return c.JSON(fiber.Map{"data": response})
}
