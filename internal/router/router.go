package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/DeepakGowda123/TrustGuardAI/internal/handler"
	"github.com/DeepakGowda123/TrustGuardAI/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Health      *handler.HealthHandler
	Ad          *handler.AdHandler
	Feedback    *handler.FeedbackHandler
	Preferences *handler.PreferencesHandler
	Analytics   *handler.AnalyticsHandler
	Blocklist   *handler.BlocklistHandler
}

// Limits holds the per-route rate limiters. A nil limiter disables limiting
// for its routes.
type Limits struct {
	AdServe  *middleware.RateLimiter
	Feedback *middleware.RateLimiter
	Admin    *middleware.RateLimiter
}

// DefaultLimits returns the production rate limits.
func DefaultLimits() Limits {
	return Limits{
		AdServe:  middleware.NewAdServeRateLimiter(),
		Feedback: middleware.NewFeedbackRateLimiter(),
		Admin:    middleware.NewAdminRateLimiter(),
	}
}

// Stop ends the background cleanup of every configured limiter.
func (l Limits) Stop() {
	for _, rl := range []*middleware.RateLimiter{l.AdServe, l.Feedback, l.Admin} {
		if rl != nil {
			rl.Stop()
		}
	}
}

// Setup configures the middleware stack and all routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, limits Limits, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestID())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	app.Get("/", handler.Root)
	app.Get("/health", h.Health.Ready)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// Ad serving
	app.Get("/ads/:userId", limit(limits.AdServe), h.Ad.Serve)

	// Feedback
	app.Post("/feedback", limit(limits.Feedback), h.Feedback.Submit)
	app.Get("/feedback", h.Feedback.List)
	app.Get("/analytics/user/:userId", h.Analytics.User)

	// Preferences
	app.Post("/set_preferences", limit(limits.Admin), h.Preferences.Set)
	app.Get("/get_preferences/:userId", h.Preferences.Get)

	// Blocklists
	app.Post("/block_ad", limit(limits.Admin), h.Blocklist.BlockGlobal)
	app.Post("/block_ad_user", limit(limits.Admin), h.Blocklist.BlockUser)
	app.Get("/blocked_ads", h.Blocklist.ListGlobal)
	app.Get("/blocked_ads/:userId", h.Blocklist.ListUser)
}

// limit returns rl's handler, or a pass-through when rl is nil.
func limit(rl *middleware.RateLimiter) fiber.Handler {
	if rl == nil {
		return func(c fiber.Ctx) error { return c.Next() }
	}
	return rl.Handler()
}
