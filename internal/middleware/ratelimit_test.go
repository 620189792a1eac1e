package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
)

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    5,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})
	t.Cleanup(rl.Stop)

	for i := 0; i < 5; i++ {
		if !rl.Allow("test-ip") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_BlocksAfterMax(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    3,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})
	t.Cleanup(rl.Stop)

	for i := 0; i < 3; i++ {
		rl.Allow("test-ip")
	}

	if rl.Allow("test-ip") {
		t.Fatal("4th request should be blocked")
	}
}

func TestRateLimiter_DifferentKeysIndependent(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    2,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})
	t.Cleanup(rl.Stop)

	rl.Allow("ip-a")
	rl.Allow("ip-a")

	// ip-a is exhausted
	if rl.Allow("ip-a") {
		t.Fatal("ip-a should be blocked")
	}

	// ip-b should still be allowed
	if !rl.Allow("ip-b") {
		t.Fatal("ip-b should be allowed (independent key)")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    2,
		Window: 50 * time.Millisecond,
		KeyFn:  KeyByIP,
	})
	t.Cleanup(rl.Stop)

	rl.Allow("test")
	rl.Allow("test")

	if rl.Allow("test") {
		t.Fatal("should be blocked within window")
	}

	// Wait for window to expire
	time.Sleep(60 * time.Millisecond)

	if !rl.Allow("test") {
		t.Fatal("should be allowed after window reset")
	}
}

func TestRateLimiter_AdServeConfig(t *testing.T) {
	rl := NewAdServeRateLimiter()
	t.Cleanup(rl.Stop)
	for i := 0; i < 60; i++ {
		if !rl.Allow("ip:127.0.0.1") {
			t.Fatalf("ad request %d should be allowed (max 60)", i+1)
		}
	}
	if rl.Allow("ip:127.0.0.1") {
		t.Fatal("61st ad request should be blocked")
	}
}

func TestRateLimiter_FeedbackConfig(t *testing.T) {
	rl := NewFeedbackRateLimiter()
	t.Cleanup(rl.Stop)
	for i := 0; i < 20; i++ {
		if !rl.Allow("user:u1") {
			t.Fatalf("feedback request %d should be allowed (max 20)", i+1)
		}
	}
	if rl.Allow("user:u1") {
		t.Fatal("21st feedback request should be blocked")
	}
}

func TestRateLimiter_HandlerReturnsEnvelope(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    1,
		Window: time.Minute,
		KeyFn:  KeyByUserID,
	})
	t.Cleanup(rl.Stop)
	app := fiber.New()
	app.Post("/feedback", rl.Handler(), func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	send := func(userID string) *http.Response {
		t.Helper()
		body := `{"user_id":"` + userID + `","ad_title":"A","feedback":"up"}`
		req := httptest.NewRequest(fiber.MethodPost, "/feedback", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		return resp
	}

	if resp := send("u1"); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("first request status = %d, want 200", resp.StatusCode)
	}
	resp := send("u1")
	if resp.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("second request status = %d, want 429", resp.StatusCode)
	}
	var got struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Code != CodeRateLimited || got.Error == "" {
		t.Errorf("body = %+v, want code %s with a message", got, CodeRateLimited)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}

	// Keys are per user, so another user still gets through.
	if resp := send("u2"); resp.StatusCode != fiber.StatusOK {
		t.Errorf("other user status = %d, want 200", resp.StatusCode)
	}
}

func TestRateLimiter_StopEndsCleanup(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 1, Window: time.Minute, KeyFn: KeyByIP})
	rl.Stop()
	rl.Stop()

	select {
	case <-rl.done:
	case <-time.After(time.Second):
		t.Fatal("cleanup goroutine still running after Stop")
	}
}

func TestRateLimiter_PruneDropsExpiredWindows(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{Max: 5, Window: time.Minute, KeyFn: KeyByIP})
	t.Cleanup(rl.Stop)

	rl.Allow("ip-a")
	rl.Allow("ip-b")

	if n := rl.prune(time.Now()); n != 0 {
		t.Errorf("prune inside window = %d, want 0", n)
	}
	if n := rl.prune(time.Now().Add(2 * time.Minute)); n != 2 {
		t.Errorf("prune after window = %d, want 2", n)
	}
	if !rl.Allow("ip-a") {
		t.Error("ip-a should start a fresh window after prune")
	}
}
