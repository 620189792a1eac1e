package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/DeepakGowda123/TrustGuardAI/internal/middleware"
	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
	"github.com/DeepakGowda123/TrustGuardAI/internal/service"
)

type BlocklistHandler struct {
	svc     *service.BlocklistService
	timeout time.Duration
}

func NewBlocklistHandler(svc *service.BlocklistService, timeout time.Duration) *BlocklistHandler {
	return &BlocklistHandler{svc: svc, timeout: timeout}
}

// BlockGlobal handles POST /block_ad
func (h *BlocklistHandler) BlockGlobal(c fiber.Ctx) error {
	var req model.BlockAdRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, middleware.CodeInvalidBody, msgInvalidBody)
	}
	if req.AdTitle == "" {
		return badRequest(c, middleware.CodeMissingFields, "ad_title is required")
	}
	title, errMsg := middleware.ValidateAdTitle(req.AdTitle)
	if errMsg != "" {
		return badRequest(c, middleware.CodeInvalidField, errMsg)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.svc.BlockGlobally(ctx, title); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "blocked": title})
}

// BlockUser handles POST /block_ad_user
func (h *BlocklistHandler) BlockUser(c fiber.Ctx) error {
	var req model.BlockAdUserRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, middleware.CodeInvalidBody, msgInvalidBody)
	}
	if req.UserID == "" || req.AdTitle == "" {
		return badRequest(c, middleware.CodeMissingFields, "user_id and ad_title are required")
	}
	userID, errMsg := middleware.ValidateUserID(req.UserID)
	if errMsg != "" {
		return badRequest(c, middleware.CodeInvalidField, errMsg)
	}
	title, errMsg := middleware.ValidateAdTitle(req.AdTitle)
	if errMsg != "" {
		return badRequest(c, middleware.CodeInvalidField, errMsg)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	if err := h.svc.BlockForUser(ctx, userID, title); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"status": "success", "user_id": userID, "blocked": title})
}

// ListGlobal handles GET /blocked_ads
func (h *BlocklistHandler) ListGlobal(c fiber.Ctx) error {
	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	titles, err := h.svc.GlobalTitles(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(titles)
}

// ListUser handles GET /blocked_ads/:userId
func (h *BlocklistHandler) ListUser(c fiber.Ctx) error {
	userID, errMsg := userIDParam(c)
	if errMsg != "" {
		return badRequest(c, middleware.CodeInvalidField, errMsg)
	}

	ctx, cancel := requestContext(c, h.timeout)
	defer cancel()

	titles, err := h.svc.UserTitles(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(titles)
}
