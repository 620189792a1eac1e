package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/DeepakGowda123/TrustGuardAI/internal/middleware"
	"github.com/DeepakGowda123/TrustGuardAI/internal/service"
)

type AdHandler struct {
	svc     *service.AdService
	timeout time.Duration
}

func NewAdHandler(svc *service.AdService, timeout time.Duration) *AdHandler {
	return &AdHandler{svc: svc, timeout: timeout}
}

// Serve handles GET /ads/:userId
func (h *AdHandler) Serve(c fiber.Ctx) error {
	userID, errMsg := userIDParam(c)
	if errMsg != "" {
		return badRequest(c, middleware.CodeInvalidField, errMsg)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	resp, err := h.svc.Serve(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSuitableAds):
			Metrics.AdsServedTotal.WithLabelValues("no_suitable_ads", "").Inc()
		case errors.Is(err, service.ErrUserNotFound):
			Metrics.AdsServedTotal.WithLabelValues("user_not_found", "").Inc()
		}
		return writeError(c, err)
	}

	Metrics.AdsServedTotal.WithLabelValues("served", string(resp.EmpathyAnalysis.VulnerabilityLevel)).Inc()
	return c.JSON(resp)
}
