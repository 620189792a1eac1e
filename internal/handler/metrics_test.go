package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestSanitizeEndpoint(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/ads/user_1", "/ads/:userId"},
		{"/ads/", "/ads/"},
		{"/get_preferences/alice", "/get_preferences/:userId"},
		{"/analytics/user/u9", "/analytics/user/:userId"},
		{"/blocked_ads/u1", "/blocked_ads/:userId"},
		{"/blocked_ads", "/blocked_ads"},
		{"/feedback", "/feedback"},
	}
	for _, tt := range tests {
		if got := sanitizeEndpoint(tt.in); got != tt.want {
			t.Errorf("sanitizeEndpoint(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMetricsMiddleware_InFlightSurvivesPanic(t *testing.T) {
	app := fiber.New()
	app.Use(recoverer.New())
	app.Use(MetricsMiddleware())
	app.Get("/boom", func(fiber.Ctx) error {
		panic("handler blew up")
	})
	app.Get("/ok", func(c fiber.Ctx) error {
		return c.SendString("ok")
	})

	before := testutil.ToFloat64(Metrics.RequestsInFlight)
	for _, path := range []string{"/boom", "/ok", "/boom"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
	}
	if after := testutil.ToFloat64(Metrics.RequestsInFlight); after != before {
		t.Errorf("in-flight gauge = %v after requests, want %v", after, before)
	}
}
