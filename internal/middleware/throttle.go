package middleware

import (
	"strconv"
	"time"

	"github.com/abstravel/site/internal/logger"
	"github.com/abstravel/site/internal/session"
	"github.com/gofiber/fiber/v2"
)

// ThrottleConfig limits sign-in attempts per client.
type ThrottleConfig struct {
	Store  session.Store
	Max    int64
	Window time.Duration
}

const throttleKey = "throttle"

// ThrottleKey is the counter a successful sign-in resets.
func ThrottleKey(c *fiber.Ctx) string {
	return "login:" + c.IP()
}

// ResetThrottle clears the caller's counter after a successful sign-in. It
// is a no-op when LoginThrottle did not run.
func ResetThrottle(c *fiber.Ctx) error {
	store, ok := c.Locals(throttleKey).(session.Store)
	if !ok {
		return nil
	}
	return store.Reset(c.UserContext(), ThrottleKey(c))
}

// LoginThrottle counts every attempt and answers 429 once Max is exceeded
// within Window. Handlers reset the counter on success, so in effect only
// failures accumulate. Store errors let the request through.
func LoginThrottle(cfg ThrottleConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := cfg.Store.Hit(c.UserContext(), ThrottleKey(c), cfg.Window)
		if err != nil {
			logger.Get().Error().Err(err).Msg("Login throttle unavailable")
			return c.Next()
		}
		if n > cfg.Max {
			logger.Get().Warn().
				Str("ip", c.IP()).
				Int64("attempts", n).
				Msg("Too many sign-in attempts")
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(cfg.Window.Seconds())))
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many sign-in attempts, try again later")
		}
		c.Locals(throttleKey, cfg.Store)
		return c.Next()
	}
}
