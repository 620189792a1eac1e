package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/DeepakGowda123/TrustGuardAI/internal/middleware"
	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
	"github.com/DeepakGowda123/TrustGuardAI/internal/service"
)

type PreferencesHandler struct {
	svc     *service.PreferenceService
	timeout time.Duration
}

func NewPreferencesHandler(svc *service.PreferenceService, timeout time.Duration) *PreferencesHandler {
	return &PreferencesHandler{svc: svc, timeout: timeout}
}

// Set handles POST /set_preferences. Omitted flags reset to true.
func (h *PreferencesHandler) Set(c fiber.Ctx) error {
	var req model.SetPreferencesRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, middleware.CodeInvalidBody, msgInvalidBody)
	}
	if req.UserID == "" {
		return badRequest(c, middleware.CodeMissingFields, "user_id is required")
	}
	userID, errMsg := middleware.ValidateUserID(req.UserID)
	if errMsg != "" {
		return badRequest(c, middleware.CodeInvalidField, errMsg)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	prefs, err := h.svc.Set(ctx, userID, req.Preferences)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(model.SetPreferencesResponse{Status: "success", Preferences: prefs})
}

// Get handles GET /get_preferences/:userId
func (h *PreferencesHandler) Get(c fiber.Ctx) error {
	userID, errMsg := userIDParam(c)
	if errMsg != "" {
		return badRequest(c, middleware.CodeInvalidField, errMsg)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	prefs, err := h.svc.Get(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(prefs)
}
