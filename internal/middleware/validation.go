package middleware

import (
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v3"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
)

// Field length limits matching database schema constraints.
const (
	MaxUserIDLen  = model.MaxUserIDLen
	MaxAdTitleLen = 200 // ads.title VARCHAR(200)
	MaxEmotionLen = 32  // feedback.emotion VARCHAR(32)
)

// Error codes carried in the "code" field of error responses.
const (
	CodeNotFound      = "NOT_FOUND"
	CodeMissingFields = "MISSING_FIELDS"
	CodeInvalidField  = "INVALID_FIELD"
	CodeInvalidBody   = "INVALID_BODY"
	CodeNoSuitableAds = "NO_SUITABLE_ADS"
	CodeUpstream      = "UPSTREAM_ERROR"
	CodeRateLimited   = "RATE_LIMITED"
	CodeInternal      = "INTERNAL_ERROR"
)

// ErrorResponse writes the flat error envelope {"error": message, "code": code}.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
		"code":  code,
	})
}

// ValidateUserID trims a user id and applies model.CheckUserID.
func ValidateUserID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if msg := model.CheckUserID(id); msg != "" {
		return "", msg
	}
	return id, ""
}

// ValidateAdTitle trims an ad title and rejects control characters.
func ValidateAdTitle(title string) (string, string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "ad_title is required"
	}
	if len(title) > MaxAdTitleLen {
		return "", "ad_title must be at most 200 characters"
	}
	if strings.IndexFunc(title, unicode.IsControl) >= 0 {
		return "", "ad_title contains control characters"
	}
	return title, ""
}

func ValidateFeedbackKind(kind string) (model.FeedbackKind, string) {
	k := model.FeedbackKind(strings.ToLower(strings.TrimSpace(kind)))
	if k == "" {
		return "", "feedback is required"
	}
	if !k.Valid() {
		return "", "feedback must be one of up, down, block"
	}
	return k, ""
}

// ValidateEmotion lowercases an optional free-form emotion tag. Empty is
// allowed.
func ValidateEmotion(emotion string) (string, string) {
	emotion = strings.ToLower(strings.TrimSpace(emotion))
	if emotion == "" {
		return "", ""
	}
	if len(emotion) > MaxEmotionLen {
		return "", "emotion must be at most 32 characters"
	}
	if strings.IndexFunc(emotion, unicode.IsControl) >= 0 {
		return "", "emotion contains control characters"
	}
	return emotion, ""
}
