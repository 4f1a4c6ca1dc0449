package web

import (
	"github.com/abstravel/site/internal/content"
	"github.com/abstravel/site/internal/i18n"
	"github.com/abstravel/site/internal/middleware"
	"github.com/abstravel/site/internal/models"
	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Home(c *fiber.Ctx) error {
	packages := h.content.Packages(c.UserContext())
	return h.render(c, "index", publicLayout, fiber.Map{
		"Packages":     packages.Items,
		"Services":     content.Services(),
		"Testimonials": content.Testimonials(),
	})
}

func (h *Handler) About(c *fiber.Ctx) error {
	return h.render(c, "about", publicLayout, nil)
}

func (h *Handler) Services(c *fiber.Ctx) error {
	return h.render(c, "services", publicLayout, fiber.Map{
		"Services": content.Services(),
	})
}

func (h *Handler) Packages(c *fiber.Ctx) error {
	packages := h.content.Packages(c.UserContext())
	return h.render(c, "packages", publicLayout, fiber.Map{
		"Packages": packages.Items,
	})
}

func (h *Handler) Gallery(c *fiber.Ctx) error {
	items := h.content.Gallery(c.UserContext()).Items
	var photos, videos []models.GalleryItem
	for _, item := range items {
		if item.IsVideo() {
			videos = append(videos, item)
		} else {
			photos = append(photos, item)
		}
	}
	return h.render(c, "gallery", publicLayout, fiber.Map{
		"Photos": photos,
		"Videos": videos,
	})
}

func (h *Handler) GroupsUpdates(c *fiber.Ctx) error {
	posts := h.content.Posts(c.UserContext())
	return h.render(c, "groups_updates", publicLayout, fiber.Map{
		"Posts": posts.Items,
	})
}

func (h *Handler) Contact(c *fiber.Ctx) error {
	return h.render(c, "contact", publicLayout, nil)
}

// SetLanguage handles /lang/:tag and sends the visitor back to ?next=.
func (h *Handler) SetLanguage(c *fiber.Ctx) error {
	lang, ok := i18n.Parse(c.Params("tag"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Unsupported language")
	}
	middleware.SetLanguage(c, lang, h.cookieSecure)
	return c.Redirect(safeNext(c.Query("next", "/")), fiber.StatusFound)
}
