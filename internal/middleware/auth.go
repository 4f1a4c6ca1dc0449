package middleware

import (
	"errors"
	"strings"

	"github.com/abstravel/site/internal/backend"
	"github.com/abstravel/site/internal/logger"
	"github.com/abstravel/site/internal/session"
	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// SessionCookie names the admin session cookie.
const SessionCookie = "abs_session"

// Identity is the signed-in admin as seen by handlers.
type Identity struct {
	UserID      string
	Email       string
	AccessToken string
	SessionID   string
}

// IdentityFrom returns the identity stored by RequireSession or NewAuth.
func IdentityFrom(c *fiber.Ctx) *Identity {
	id, _ := c.Locals(identityKey).(*Identity)
	return id
}

// AuthConfig defines the config for the bearer auth middleware
type AuthConfig struct {
	// Skip defines a function to skip middleware.
	// Optional. Default: nil
	Next func(c *fiber.Ctx) bool

	// Auth checks the bearer token against the backend.
	// Required.
	Auth backend.Auth

	// ErrorHandler defines a function which is executed for an invalid token.
	// Optional. Default: 401 Invalid or missing access token
	ErrorHandler fiber.ErrorHandler

	// Header is the header key where to get the token from.
	// Optional. Default: "Authorization"
	Header string
}

// ConfigDefault is the default config
var ConfigDefault = AuthConfig{
	Next: nil,
	ErrorHandler: func(c *fiber.Ctx, err error) error {
		logger.Get().Warn().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Err(err).
			Msg("Authentication failed")

		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or missing access token",
		})
	},
	Header: fiber.HeaderAuthorization,
}

// NewAuth guards the JSON admin API with the backend access token.
func NewAuth(config AuthConfig) fiber.Handler {
	cfg := config
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = ConfigDefault.ErrorHandler
	}
	if cfg.Header == "" {
		cfg.Header = ConfigDefault.Header
	}

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}

		authHeader := c.Get(cfg.Header)
		if authHeader == "" {
			return cfg.ErrorHandler(c, errors.New("missing access token"))
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		user, err := cfg.Auth.GetUser(c.UserContext(), token)
		if err != nil {
			return cfg.ErrorHandler(c, err)
		}

		c.Locals(identityKey, &Identity{
			UserID:      user.ID,
			Email:       user.Email,
			AccessToken: token,
		})
		return c.Next()
	}
}

// SessionConfig configures the cookie session gate for admin pages.
type SessionConfig struct {
	Store session.Store
	Auth  backend.Auth

	// LoginPath is where HTML requests without a session are sent.
	// Optional. Default: "/admin/login"
	LoginPath string
}

// RequireSession runs before every admin page. Without an active session
// nothing downstream runs.
func RequireSession(cfg SessionConfig) fiber.Handler {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/admin/login"
	}

	deny := func(c *fiber.Ctx, reason string) error {
		logger.Get().Debug().
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Str("reason", reason).
			Msg("Admin session required")
		if wantsJSON(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}
		return c.Redirect(cfg.LoginPath, fiber.StatusFound)
	}

	return func(c *fiber.Ctx) error {
		sid := c.Cookies(SessionCookie)
		if sid == "" {
			return deny(c, "no session cookie")
		}

		ctx := c.UserContext()
		data, err := cfg.Store.Load(ctx, sid)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				logger.Get().Error().Err(err).Msg("Failed to load session")
			}
			return deny(c, "unknown session")
		}

		user, err := cfg.Auth.GetUser(ctx, data.AccessToken)
		if err != nil {
			if delErr := cfg.Store.Delete(ctx, sid); delErr != nil {
				logger.Get().Error().Err(delErr).Msg("Failed to drop stale session")
			}
			return deny(c, "inactive session")
		}

		c.Locals(identityKey, &Identity{
			UserID:      user.ID,
			Email:       user.Email,
			AccessToken: data.AccessToken,
			SessionID:   sid,
		})
		return c.Next()
	}
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}
