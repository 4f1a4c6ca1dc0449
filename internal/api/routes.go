package api

import (
	"github.com/abstravel/site/internal/middleware"
	"github.com/abstravel/site/internal/models"
	"github.com/gofiber/fiber/v2"
)

// Deps are the shared middleware the API routes need.
type Deps struct {
	Validator *middleware.Validator
	Throttle  middleware.ThrottleConfig
}

// SetupRoutes mounts the JSON API under /api/v1.
func SetupRoutes(app *fiber.App, h *Handlers, deps Deps) {
	api := app.Group("/api/v1")

	api.Get("/health", h.HealthCheck)
	api.Get("/i18n/:lang", h.GetTranslations)

	// Public lists, with sample data when the backend is down
	api.Get("/packages", h.GetPackages)
	api.Get("/posts", h.GetPosts)
	api.Get("/gallery", h.GetGallery)

	api.Post("/auth/token",
		middleware.LoginThrottle(deps.Throttle),
		middleware.ValidateBody[credentials](deps.Validator),
		h.SignIn,
	)

	admin := api.Group("/admin", middleware.NewAuth(middleware.AuthConfig{Auth: h.auth}))
	{
		admin.Get("/stats", h.GetStats)
		admin.Post("/logout", h.SignOut)

		resource[models.Package]{col: h.admin.Packages, label: "package"}.mount(admin, "/packages")
		resource[models.Post]{col: h.admin.Posts, label: "post"}.mount(admin, "/posts")
		resource[models.GalleryItem]{col: h.admin.Gallery, label: "gallery item"}.mount(admin, "/gallery")
	}

	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
