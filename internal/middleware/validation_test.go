package middleware

import (
	"strings"
	"testing"

	"github.com/DeepakGowda123/TrustGuardAI/internal/model"
)

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "user_1", "user_1", false},
		{"email-like", "alice@example.com", "alice@example.com", false},
		{"trims whitespace", "  u1  ", "u1", false},
		{"empty", "", "", true},
		{"blank", "   ", "", true},
		{"too long 65", strings.Repeat("a", 65), "", true},
		{"exactly 64", strings.Repeat("a", 64), strings.Repeat("a", 64), false},
		{"space inside", "user one", "user one", false},
		{"plus sign", "a+b@x.com", "a+b@x.com", false},
		{"non-ascii", "rémi", "rémi", false},
		{"quotes kept opaque", "u1'; DROP--", "u1'; DROP--", false},
		{"control char", "u1\x00", "", true},
		{"tab inside", "user\tone", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateUserID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateAdTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "Luxury Watch Sale", "Luxury Watch Sale", false},
		{"punctuation kept", "50% Off! Today's Deal", "50% Off! Today's Deal", false},
		{"trims whitespace", " Phone ", "Phone", false},
		{"empty", "", "", true},
		{"too long", strings.Repeat("x", 201), "", true},
		{"control char", "Bad\x00Title", "", true},
		{"newline", "Two\nLines", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateAdTitle(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateFeedbackKind(t *testing.T) {
	tests := []struct {
		input   string
		want    model.FeedbackKind
		wantErr bool
	}{
		{"up", model.FeedbackUp, false},
		{"DOWN", model.FeedbackDown, false},
		{" block ", model.FeedbackBlock, false},
		{"", "", true},
		{"like", "", true},
	}
	for _, tt := range tests {
		got, errMsg := ValidateFeedbackKind(tt.input)
		if (errMsg != "") != tt.wantErr {
			t.Errorf("ValidateFeedbackKind(%q) err = %q, wantErr %v", tt.input, errMsg, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ValidateFeedbackKind(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidateEmotion(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"Happy", "happy", false},
		{"very_stressed", "very_stressed", false},
		{"stressed-out", "stressed-out", false},
		{"Feeling Low", "feeling low", false},
		{"bad\nline", "", true},
		{strings.Repeat("a", 33), "", true},
	}
	for _, tt := range tests {
		got, errMsg := ValidateEmotion(tt.input)
		if (errMsg != "") != tt.wantErr {
			t.Errorf("ValidateEmotion(%q) err = %q, wantErr %v", tt.input, errMsg, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ValidateEmotion(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/ads/user_1", "/ads/:userId"},
		{"/analytics/user/user_1", "/analytics/user/:userId"},
		{"/get_preferences/alice", "/get_preferences/:userId"},
		{"/blocked_ads/u9", "/blocked_ads/:userId"},
		{"/blocked_ads", "/blocked_ads"},
		{"/feedback", "/feedback"},
	}
	for _, tt := range tests {
		if got := sanitizePath(tt.in); got != tt.want {
			t.Errorf("sanitizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseOrigins(t *testing.T) {
	if got := ParseOrigins(""); len(got) != 1 || got[0] != "*" {
		t.Errorf("empty origins = %v, want [*]", got)
	}
	got := ParseOrigins("http://a.test, http://b.test,,")
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Errorf("ParseOrigins = %v", got)
	}
}
