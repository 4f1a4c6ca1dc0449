package web

import (
	"errors"
	"time"

	"github.com/abstravel/site/internal/admin"
	"github.com/abstravel/site/internal/backend"
	"github.com/abstravel/site/internal/logger"
	"github.com/abstravel/site/internal/middleware"
	"github.com/abstravel/site/internal/models"
	"github.com/abstravel/site/internal/notify"
	"github.com/gofiber/fiber/v2"
)

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *Handler) LoginPage(c *fiber.Ctx) error {
	return h.render(c, "admin/login", adminLayout, nil)
}

func (h *Handler) Login(c *fiber.Ctx) error {
	var form loginForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form")
	}

	sid, _, err := h.sessions.Login(c.UserContext(), form.Email, form.Password)
	if err != nil {
		logger.Get().Warn().Err(err).Str("ip", c.IP()).Msg("Admin sign-in failed")

		message := "Login failed"
		var be *backend.Error
		if errors.As(err, &be) && be.Message != "" && be.Status < fiber.StatusInternalServerError {
			message = be.Message
		}
		c.Status(fiber.StatusUnauthorized)
		return h.render(c, "admin/login", adminLayout, fiber.Map{
			"Email": form.Email,
			"Flash": &notify.Flash{Kind: notify.KindError, Message: message},
		})
	}

	if err := middleware.ResetThrottle(c); err != nil {
		logger.Get().Error().Err(err).Msg("Failed to reset login throttle")
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    sid,
		Path:     "/",
		Expires:  time.Now().Add(h.sessions.TTL()),
		Secure:   h.cookieSecure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	notify.Success(c, "Login successful!")
	return c.Redirect("/admin/dashboard")
}

func (h *Handler) Logout(c *fiber.Ctx) error {
	id := middleware.IdentityFrom(c)
	h.sessions.Logout(c.UserContext(), id.SessionID, id.AccessToken)

	c.ClearCookie(middleware.SessionCookie)
	notify.Success(c, "Logged out successfully")
	return c.Redirect("/admin/login")
}

func (h *Handler) Dashboard(c *fiber.Ctx) error {
	id := middleware.IdentityFrom(c)
	return h.render(c, "admin/dashboard", adminLayout, fiber.Map{
		"Stats": h.admin.Stats(c.UserContext(), id.AccessToken),
	})
}

func token(c *fiber.Ctx) string {
	return middleware.IdentityFrom(c).AccessToken
}

// Packages

func (h *Handler) AdminPackages(c *fiber.Ctx) error {
	data := fiber.Map{}
	items, err := h.admin.Packages.List(c.UserContext(), token(c))
	if err != nil {
		logger.Get().Error().Err(err).Msg("Failed to load packages")
		data["Flash"] = &notify.Flash{Kind: notify.KindError, Message: "Failed to load packages"}
	}
	data["Packages"] = items
	return h.render(c, "admin/packages", adminLayout, data)
}

func (h *Handler) NewPackage(c *fiber.Ctx) error {
	return h.packageForm(c, "", admin.NewPackageForm(), nil)
}

func (h *Handler) EditPackage(c *fiber.Ctx) error {
	id := c.Params("id")
	pkg, err := h.admin.Packages.Get(c.UserContext(), token(c), id)
	if err != nil {
		logger.Get().Error().Err(err).Str("id", id).Msg("Failed to load package")
		notify.Error(c, "Failed to load package")
		return c.Redirect("/admin/packages")
	}
	return h.packageForm(c, id, admin.PackageFormFrom(pkg), nil)
}

func (h *Handler) SavePackage(c *fiber.Ctx) error {
	id := c.Params("id")
	var form admin.PackageForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form")
	}

	err := h.admin.CheckForm(form)
	if err == nil {
		var pkg models.Package
		if pkg, err = form.Package(); err == nil {
			_, err = h.admin.Packages.Save(c.UserContext(), token(c), id, pkg)
		}
	}
	if err != nil {
		return h.packageForm(c, id, form, err)
	}

	if id == "" {
		notify.Success(c, "Package created successfully")
	} else {
		notify.Success(c, "Package updated successfully")
	}
	return c.Redirect("/admin/packages")
}

func (h *Handler) packageForm(c *fiber.Ctx, id string, form admin.PackageForm, saveErr error) error {
	data := fiber.Map{
		"ID":     id,
		"Form":   form,
		"Action": "/admin/packages/new",
	}
	if id != "" {
		data["Action"] = "/admin/packages/edit/" + id
	}
	if saveErr != nil {
		h.failSave(c, data, saveErr, "Failed to save package")
	}
	return h.render(c, "admin/package_form", adminLayout, data)
}

// Posts

func (h *Handler) AdminPosts(c *fiber.Ctx) error {
	data := fiber.Map{}
	items, err := h.admin.Posts.List(c.UserContext(), token(c))
	if err != nil {
		logger.Get().Error().Err(err).Msg("Failed to load posts")
		data["Flash"] = &notify.Flash{Kind: notify.KindError, Message: "Failed to load posts"}
	}
	data["Posts"] = items
	return h.render(c, "admin/posts", adminLayout, data)
}

func (h *Handler) NewPost(c *fiber.Ctx) error {
	return h.postForm(c, "", admin.PostForm{}, nil)
}

func (h *Handler) EditPost(c *fiber.Ctx) error {
	id := c.Params("id")
	post, err := h.admin.Posts.Get(c.UserContext(), token(c), id)
	if err != nil {
		logger.Get().Error().Err(err).Str("id", id).Msg("Failed to load post")
		notify.Error(c, "Failed to load post")
		return c.Redirect("/admin/posts")
	}
	return h.postForm(c, id, admin.PostFormFrom(post), nil)
}

func (h *Handler) SavePost(c *fiber.Ctx) error {
	id := c.Params("id")
	var form admin.PostForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form")
	}

	err := h.admin.CheckForm(form)
	if err == nil {
		_, err = h.admin.Posts.Save(c.UserContext(), token(c), id, form.Post())
	}
	if err != nil {
		return h.postForm(c, id, form, err)
	}

	if id == "" {
		notify.Success(c, "Post created successfully")
	} else {
		notify.Success(c, "Post updated successfully")
	}
	return c.Redirect("/admin/posts")
}

func (h *Handler) postForm(c *fiber.Ctx, id string, form admin.PostForm, saveErr error) error {
	data := fiber.Map{
		"ID":     id,
		"Form":   form,
		"Action": "/admin/posts/new",
	}
	if id != "" {
		data["Action"] = "/admin/posts/edit/" + id
	}
	if saveErr != nil {
		h.failSave(c, data, saveErr, "Failed to save post")
	}
	return h.render(c, "admin/post_form", adminLayout, data)
}

// Gallery

func (h *Handler) AdminGallery(c *fiber.Ctx) error {
	return h.galleryPage(c, admin.NewGalleryForm(), nil)
}

func (h *Handler) AddGalleryItem(c *fiber.Ctx) error {
	var form admin.GalleryForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form")
	}

	err := h.admin.CheckForm(form)
	if err == nil {
		err = h.attachUpload(c, &form)
	}
	if err == nil {
		_, err = h.admin.Gallery.Save(c.UserContext(), token(c), "", form.Item())
	}
	if err != nil {
		return h.galleryPage(c, form, err)
	}

	notify.Success(c, "Gallery item added successfully")
	return c.Redirect("/admin/gallery")
}

// attachUpload stores the optional file field and points the item at it.
func (h *Handler) attachUpload(c *fiber.Ctx, form *admin.GalleryForm) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil || fh.Size == 0 {
		return nil
	}
	if h.uploader == nil {
		return errors.New("media uploads are not configured")
	}
	url, err := h.uploader.Upload(c.UserContext(), fh)
	if err != nil {
		return err
	}
	form.ImageURL = url
	return nil
}

func (h *Handler) galleryPage(c *fiber.Ctx, form admin.GalleryForm, saveErr error) error {
	data := fiber.Map{
		"Form":          form,
		"UploadEnabled": h.uploader != nil,
	}
	items, err := h.admin.Gallery.List(c.UserContext(), token(c))
	if err != nil {
		logger.Get().Error().Err(err).Msg("Failed to load gallery items")
		data["Flash"] = &notify.Flash{Kind: notify.KindError, Message: "Failed to load gallery items"}
	}
	data["Items"] = items
	if saveErr != nil {
		h.failSave(c, data, saveErr, "Failed to add gallery item")
	}
	return h.render(c, "admin/gallery", adminLayout, data)
}

// failSave records a failed save on the page data: the notice, the field
// errors and the status.
func (h *Handler) failSave(c *fiber.Ctx, data fiber.Map, err error, message string) {
	var invalid *admin.InvalidError
	if errors.As(err, &invalid) {
		c.Status(fiber.StatusUnprocessableEntity)
		data["Errors"] = middleware.FieldErrors(err)
	} else {
		c.Status(fiber.StatusBadGateway)
		logger.Get().Error().Err(err).Msg(message)
	}
	data["Flash"] = &notify.Flash{Kind: notify.KindError, Message: message}
}

// Delete

type deletion struct {
	label   string
	back    string
	prompt  string
	done    string
	failed  string
	destroy func(c *fiber.Ctx, id string) error
}

func (h *Handler) deletions() map[string]deletion {
	return map[string]deletion{
		"packages": {
			label: "package", back: "/admin/packages",
			prompt: "Are you sure you want to delete this package?",
			done:   "Package deleted successfully", failed: "Failed to delete package",
			destroy: func(c *fiber.Ctx, id string) error {
				return h.admin.Packages.Delete(c.UserContext(), token(c), id)
			},
		},
		"posts": {
			label: "post", back: "/admin/posts",
			prompt: "Are you sure you want to delete this post?",
			done:   "Post deleted successfully", failed: "Failed to delete post",
			destroy: func(c *fiber.Ctx, id string) error {
				return h.admin.Posts.Delete(c.UserContext(), token(c), id)
			},
		},
		"gallery": {
			label: "gallery item", back: "/admin/gallery",
			prompt: "Are you sure you want to delete this item?",
			done:   "Gallery item deleted successfully", failed: "Failed to delete gallery item",
			destroy: func(c *fiber.Ctx, id string) error {
				return h.admin.Gallery.Delete(c.UserContext(), token(c), id)
			},
		},
	}
}

// confirm renders the confirmation step. Nothing is deleted.
func (d deletion) confirm(h *Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return h.render(c, "admin/confirm_delete", adminLayout, fiber.Map{
			"Prompt": d.prompt,
			"Label":  d.label,
			"Action": c.Path(),
			"Back":   d.back,
		})
	}
}

// perform issues the single delete and returns to the list.
func (d deletion) perform() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := d.destroy(c, id); err != nil {
			logger.Get().Error().Err(err).Str("id", id).Msg(d.failed)
			notify.Error(c, d.failed)
		} else {
			notify.Success(c, d.done)
		}
		return c.Redirect(d.back)
	}
}
