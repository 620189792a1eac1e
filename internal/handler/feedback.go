package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/DeepakGowda123/TrustGuardAI/internal/middleware"
	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
	"github.com/DeepakGowda123/TrustGuardAI/internal/service"
)

type FeedbackHandler struct {
	svc     *service.FeedbackService
	timeout time.Duration
}

func NewFeedbackHandler(svc *service.FeedbackService, timeout time.Duration) *FeedbackHandler {
	return &FeedbackHandler{svc: svc, timeout: timeout}
}

// Submit handles POST /feedback
func (h *FeedbackHandler) Submit(c fiber.Ctx) error {
	var req model.FeedbackRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, middleware.CodeInvalidBody, msgInvalidBody)
	}
	if req.UserID == "" || req.AdTitle == "" || req.Feedback == "" {
		return badRequest(c, middleware.CodeMissingFields, "user_id, ad_title and feedback are required")
	}

	var errMsg string
	if req.UserID, errMsg = middleware.ValidateUserID(req.UserID); errMsg != "" {
		return badRequest(c, middleware.CodeInvalidField, errMsg)
	}
	if req.AdTitle, errMsg = middleware.ValidateAdTitle(req.AdTitle); errMsg != "" {
		return badRequest(c, middleware.CodeInvalidField, errMsg)
	}
	kind, errMsg := middleware.ValidateFeedbackKind(req.Feedback)
	if errMsg != "" {
		return badRequest(c, middleware.CodeInvalidField, errMsg)
	}
	req.Feedback = string(kind)
	if req.Emotion, errMsg = middleware.ValidateEmotion(req.Emotion); errMsg != "" {
		return badRequest(c, middleware.CodeInvalidField, errMsg)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	result, err := h.svc.Submit(ctx, req)
	if err != nil {
		return writeError(c, err)
	}

	Metrics.FeedbackTotal.WithLabelValues(req.Feedback, string(result.Status)).Inc()
	return c.JSON(result)
}

// List handles GET /feedback?user_id=&ad_title=
func (h *FeedbackHandler) List(c fiber.Ctx) error {
	var filter model.FeedbackFilter
	var errMsg string
	if v := fiber.Query[string](c, "user_id"); v != "" {
		if filter.UserID, errMsg = middleware.ValidateUserID(v); errMsg != "" {
			return badRequest(c, middleware.CodeInvalidField, errMsg)
		}
	}
	if v := fiber.Query[string](c, "ad_title"); v != "" {
		if filter.AdTitle, errMsg = middleware.ValidateAdTitle(v); errMsg != "" {
			return badRequest(c, middleware.CodeInvalidField, errMsg)
		}
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	events, err := h.svc.List(ctx, filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(events)
}
