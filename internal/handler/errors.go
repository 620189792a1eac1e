package handler

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/DeepakGowda123/TrustGuardAI/internal/middleware"
	"github.com/DeepakGowda123/TrustGuardAI/internal/service"
)

const (
	msgUserNotFound  = "User not found"
	msgNoSuitableAds = "No suitable ads available."
	msgInvalidBody   = "Invalid request body"
	msgUpstream      = "Data store unavailable, please retry later"
	msgInternal      = "Internal server error"
)

// requestContext bounds the store calls of one request.
func requestContext(c fiber.Ctx, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(c.Context())
	}
	return context.WithTimeout(c.Context(), timeout)
}

// writeError converts a service error into the error envelope. Exhausted
// candidates are an expected outcome and keep a 200 status.
func writeError(c fiber.Ctx, err error) error {
	var storeErr *service.StoreError
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, middleware.CodeNotFound, msgUserNotFound)
	case errors.Is(err, service.ErrNoSuitableAds):
		return middleware.ErrorResponse(c, fiber.StatusOK, middleware.CodeNoSuitableAds, msgNoSuitableAds)
	case errors.Is(err, service.ErrMissingField):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeMissingFields, err.Error())
	case errors.Is(err, service.ErrInvalidFeedback):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, middleware.CodeInvalidField, err.Error())
	case errors.As(err, &storeErr), errors.Is(err, context.DeadlineExceeded):
		middleware.Logger.Error().Err(err).
			Str("request_id", middleware.RequestID(c)).
			Str("path", c.Route().Path).
			Msg("upstream store failure")
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, middleware.CodeUpstream, msgUpstream)
	default:
		middleware.Logger.Error().Err(err).
			Str("request_id", middleware.RequestID(c)).
			Str("path", c.Route().Path).
			Msg("unhandled error")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, middleware.CodeInternal, msgInternal)
	}
}

func badRequest(c fiber.Ctx, code, msg string) error {
	return middleware.ErrorResponse(c, fiber.StatusBadRequest, code, msg)
}

// userIDParam decodes and validates the :userId route segment. Fiber leaves
// params percent-encoded unless the app sets UnescapePath, which this
// service does not.
func userIDParam(c fiber.Ctx) (string, string) {
	id, err := url.PathUnescape(c.Params("userId"))
	if err != nil {
		return "", "user_id is not a valid path segment"
	}
	return middleware.ValidateUserID(id)
}
