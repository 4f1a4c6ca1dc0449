package api

import (
	"errors"
	"time"

	"github.com/abstravel/site/internal/admin"
	"github.com/abstravel/site/internal/backend"
	"github.com/abstravel/site/internal/content"
	"github.com/abstravel/site/internal/i18n"
	"github.com/abstravel/site/internal/logger"
	"github.com/abstravel/site/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

const version = "1.0.0"

type Handlers struct {
	content *content.Service
	admin   *admin.Service
	auth    backend.Auth
}

func NewHandlers(contentSvc *content.Service, adminSvc *admin.Service, auth backend.Auth) *Handlers {
	return &Handlers{
		content: contentSvc,
		admin:   adminSvc,
		auth:    auth,
	}
}

// HealthCheck handles the /health endpoint
func (h *Handlers) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
		"time":    time.Now().Format(time.RFC3339),
	})
}

// GetPackages handles GET /api/v1/packages
func (h *Handlers) GetPackages(c *fiber.Ctx) error {
	return c.JSON(h.content.Packages(c.UserContext()))
}

// GetPosts handles GET /api/v1/posts
func (h *Handlers) GetPosts(c *fiber.Ctx) error {
	return c.JSON(h.content.Posts(c.UserContext()))
}

// GetGallery handles GET /api/v1/gallery
func (h *Handlers) GetGallery(c *fiber.Ctx) error {
	return c.JSON(h.content.Gallery(c.UserContext()))
}

// GetTranslations handles GET /api/v1/i18n/:lang
func (h *Handlers) GetTranslations(c *fiber.Ctx) error {
	lang, ok := i18n.Parse(c.Params("lang"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Unsupported language",
		})
	}
	return c.JSON(fiber.Map{
		"lang":    lang,
		"strings": i18n.Table(lang),
	})
}

type credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignIn handles POST /api/v1/auth/token
func (h *Handlers) SignIn(c *fiber.Ctx) error {
	body := middleware.Validated[credentials](c)
	sess, err := h.auth.SignInWithPassword(c.UserContext(), body.Email, body.Password)
	if err != nil {
		logger.Get().Warn().Err(err).Str("ip", c.IP()).Msg("API sign-in failed")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Login failed",
		})
	}
	if err := middleware.ResetThrottle(c); err != nil {
		logger.Get().Error().Err(err).Msg("Failed to reset login throttle")
	}
	return c.JSON(sess)
}

// SignOut handles POST /api/v1/admin/logout
func (h *Handlers) SignOut(c *fiber.Ctx) error {
	id := middleware.IdentityFrom(c)
	if err := h.auth.SignOut(c.UserContext(), id.AccessToken); err != nil {
		logger.Get().Error().Err(err).Msg("API sign-out failed")
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Logout failed",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetStats handles GET /api/v1/admin/stats
func (h *Handlers) GetStats(c *fiber.Ctx) error {
	id := middleware.IdentityFrom(c)
	return c.JSON(h.admin.Stats(c.UserContext(), id.AccessToken))
}

// resource exposes one admin collection over JSON. label is used in
// messages, e.g. "package".
type resource[T any] struct {
	col   *admin.Collection[T]
	label string
}

func (r resource[T]) fail(c *fiber.Ctx, err error, action string) error {
	var invalid *admin.InvalidError
	if errors.As(err, &invalid) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": middleware.FieldErrors(err),
		})
	}

	logger.Get().Error().
		Err(err).
		Str("collection", r.col.Name()).
		Msg("Admin API write failed")

	status := fiber.StatusBadGateway
	var be *backend.Error
	if errors.As(err, &be) && be.Status == fiber.StatusNotFound {
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{
		"error": "Failed to " + action + " " + r.label,
	})
}

func (r resource[T]) list(c *fiber.Ctx) error {
	items, err := r.col.List(c.UserContext(), middleware.IdentityFrom(c).AccessToken)
	if err != nil {
		return r.fail(c, err, "load")
	}
	return c.JSON(fiber.Map{"items": items})
}

func (r resource[T]) get(c *fiber.Ctx) error {
	item, err := r.col.Get(c.UserContext(), middleware.IdentityFrom(c).AccessToken, c.Params("id"))
	if err != nil {
		return r.fail(c, err, "load")
	}
	return c.JSON(item)
}

func (r resource[T]) save(c *fiber.Ctx) error {
	var rec T
	if err := c.BodyParser(&rec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"msg":   err.Error(),
		})
	}

	id := c.Params("id")
	stored, err := r.col.Save(c.UserContext(), middleware.IdentityFrom(c).AccessToken, id, rec)
	if err != nil {
		return r.fail(c, err, "save")
	}
	if id == "" {
		return c.Status(fiber.StatusCreated).JSON(stored)
	}
	return c.JSON(stored)
}

func (r resource[T]) delete(c *fiber.Ctx) error {
	if err := r.col.Delete(c.UserContext(), middleware.IdentityFrom(c).AccessToken, c.Params("id")); err != nil {
		return r.fail(c, err, "delete")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (r resource[T]) mount(router fiber.Router, path string) {
	g := router.Group(path)
	g.Get("", r.list)
	g.Post("", r.save)
	g.Get("/:id", r.get)
	g.Put("/:id", r.save)
	g.Delete("/:id", r.delete)
}
