package model

import (
	"strings"
	"unicode"
)

// MaxUserIDLen matches users.id VARCHAR(64).
const MaxUserIDLen = 64

// CheckUserID returns the reason id cannot name a user, or "" if it can.
// Ids are opaque: any text without control characters fits, including
// spaces, plus signs and non-ASCII letters. Callers trim before checking.
func CheckUserID(id string) string {
	switch {
	case id == "":
		return "user_id is required"
	case len(id) > MaxUserIDLen:
		return "user_id must be at most 64 characters"
	case strings.IndexFunc(id, unicode.IsControl) >= 0:
		return "user_id contains control characters"
	}
	return ""
}
