package web

import (
	"github.com/abstravel/site/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// Deps are the guards the admin routes need.
type Deps struct {
	Session  middleware.SessionConfig
	Throttle middleware.ThrottleConfig
}

// SetupRoutes mounts the public pages and the admin screens.
func SetupRoutes(app *fiber.App, h *Handler, deps Deps) {
	app.Get("/", h.Home)
	app.Get("/about", h.About)
	app.Get("/services", h.Services)
	app.Get("/packages", h.Packages)
	app.Get("/gallery", h.Gallery)
	app.Get("/groups-updates", h.GroupsUpdates)
	app.Get("/contact", h.Contact)
	app.Get("/lang/:tag", h.SetLanguage)

	app.Get("/admin/login", h.LoginPage)
	app.Post("/admin/login", middleware.LoginThrottle(deps.Throttle), h.Login)

	// Everything below requires a session.
	secured := app.Group("/admin", middleware.RequireSession(deps.Session))
	{
		secured.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/admin/dashboard") })
		secured.Get("/dashboard", h.Dashboard)
		secured.Post("/logout", h.Logout)

		secured.Get("/packages", h.AdminPackages)
		secured.Get("/packages/new", h.NewPackage)
		secured.Post("/packages/new", h.SavePackage)
		secured.Get("/packages/edit/:id", h.EditPackage)
		secured.Post("/packages/edit/:id", h.SavePackage)

		secured.Get("/posts", h.AdminPosts)
		secured.Get("/posts/new", h.NewPost)
		secured.Post("/posts/new", h.SavePost)
		secured.Get("/posts/edit/:id", h.EditPost)
		secured.Post("/posts/edit/:id", h.SavePost)

		secured.Get("/gallery", h.AdminGallery)
		secured.Post("/gallery", h.AddGalleryItem)

		for name, d := range h.deletions() {
			secured.Get("/"+name+"/:id/delete", d.confirm(h))
			secured.Post("/"+name+"/:id/delete", d.perform())
		}
	}
}
