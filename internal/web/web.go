// Package web serves the public site and the admin screens as server
// rendered HTML.
package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abstravel/site/internal/admin"
	"github.com/abstravel/site/internal/content"
	"github.com/abstravel/site/internal/i18n"
	"github.com/abstravel/site/internal/middleware"
	"github.com/abstravel/site/internal/notify"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

//go:embed views
var views embed.FS

const (
	publicLayout = "layouts/main"
	adminLayout  = "layouts/admin"
)

const whatsAppGreeting = "Hello! I would like to inquire about your Hajj and Umrah packages."

// NewEngine loads the embedded templates with the site's template funcs.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(views, "views")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFuncMap(map[string]any{
		"money": i18n.FormatAmount,
		"upper": func(v any) string {
			return strings.ToUpper(fmt.Sprint(v))
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("January 2, 2006")
		},
		"fieldError": func(errs map[string]string, field string) string {
			return errs[field]
		},
	})
	return engine
}

// Site is the agency's contact details shown in the footer and contact page.
type Site struct {
	WhatsAppNumber string
	Phone          string
	Email          string
	Address        string
}

func (s Site) WhatsAppURL() string {
	text := strings.ReplaceAll(url.QueryEscape(whatsAppGreeting), "+", "%20")
	return "https://wa.me/" + s.WhatsAppNumber + "?text=" + text
}

// Uploader stores an uploaded gallery file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, fh *multipart.FileHeader) (string, error)
}

type Handler struct {
	content      *content.Service
	admin        *admin.Service
	sessions     *admin.Sessions
	uploader     Uploader
	site         Site
	cookieSecure bool
}

// Options wires a Handler. Uploader may be nil when media uploads are off.
type Options struct {
	Content      *content.Service
	Admin        *admin.Service
	Sessions     *admin.Sessions
	Uploader     Uploader
	Site         Site
	CookieSecure bool
}

func NewHandler(opts Options) *Handler {
	return &Handler{
		content:      opts.Content,
		admin:        opts.Admin,
		sessions:     opts.Sessions,
		uploader:     opts.Uploader,
		site:         opts.Site,
		cookieSecure: opts.CookieSecure,
	}
}

// render adds what every page needs: the localizer, contact details and
// any pending notice.
func (h *Handler) render(c *fiber.Ctx, view, layout string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["L"] = middleware.Localizer(c)
	data["Langs"] = i18n.Supported()
	data["Site"] = h.site
	data["Path"] = c.Path()
	data["Year"] = time.Now().Year()
	data["Identity"] = middleware.IdentityFrom(c)
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = notify.Pop(c)
	}
	return c.Render(view, data, layout)
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

//go:embed static
var static embed.FS

// Assets holds the stylesheet served under /static.
func Assets() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
