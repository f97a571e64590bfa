package middleware

import (
	"time"

	"github.com/fadilmartias/freelance-ledger/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter limits each client IP to max requests per sliding window.
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	if max == 0 {
		max = 50
	}
	if expiration == 0 {
		expiration = 1 * time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: expiration,
		// The event stream holds one long request per client.
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/events"
		},
		LimitReached: func(c *fiber.Ctx) error {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusTooManyRequests,
				Message: "too many requests",
				Error:   "too many requests",
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}

// ExportLimiter is the tighter limit for routes that render files.
func ExportLimiter() fiber.Handler {
	return RateLimiter(10, 1*time.Minute)
}
