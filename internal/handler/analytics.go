package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/DeepakGowda123/TrustGuardAI/internal/middleware"
	"github.com/DeepakGowda123/TrustGuardAI/internal/service"
)

type AnalyticsHandler struct {
	svc     *service.AnalyticsService
	timeout time.Duration
}

func NewAnalyticsHandler(svc *service.AnalyticsService, timeout time.Duration) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, timeout: timeout}
}

// User handles GET /analytics/user/:userId
func (h *AnalyticsHandler) User(c fiber.Ctx) error {
	userID, errMsg := userIDParam(c)
	if errMsg != "" {
		return badRequest(c, middleware.CodeInvalidField, errMsg)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	stats, err := h.svc.ForUser(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}
