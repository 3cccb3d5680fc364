package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/innovation-atlas/internal/pkg/errors"
	"github.com/innovation-atlas/internal/pkg/utils"
)

// RateLimit ограничивает число запросов с одного IP за окно window
func RateLimit(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return utils.SendError(c, errors.ErrTooManyRequests)
		},
	})
}
