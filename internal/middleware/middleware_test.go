package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abstravel/site/internal/backend"
	"github.com/abstravel/site/internal/i18n"
	"github.com/abstravel/site/internal/session"
	"github.com/gofiber/fiber/v2"
)

type stubAuth struct {
	valid string
}

func (s stubAuth) SignInWithPassword(ctx context.Context, email, password string) (*backend.Session, error) {
	return nil, errors.New("not used")
}

func (s stubAuth) GetUser(ctx context.Context, token string) (*backend.User, error) {
	if token != s.valid {
		return nil, &backend.Error{Op: "get-user", Status: 401, Message: "invalid JWT"}
	}
	return &backend.User{ID: "u1", Email: "admin@abstravel.com"}, nil
}

func (s stubAuth) SignOut(ctx context.Context, token string) error { return nil }

func gatedApp(store session.Store) *fiber.App {
	app := fiber.New()
	gate := RequireSession(SessionConfig{Store: store, Auth: stubAuth{valid: "tok"}})
	app.Get("/admin/dashboard", gate, func(c *fiber.Ctx) error {
		return c.SendString("dashboard for " + IdentityFrom(c).Email)
	})
	app.Get("/api/v1/admin/me", gate, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRequireSessionRedirectsWithoutCookie(t *testing.T) {
	app := gatedApp(session.NewMemoryStore())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusFound || resp.Header.Get("Location") != "/admin/login" {
		t.Fatalf("status = %d, location = %q", resp.StatusCode, resp.Header.Get("Location"))
	}
	body, _ := io.ReadAll(resp.Body)
	if bytes.Contains(body, []byte("dashboard")) {
		t.Error("dashboard content written without a session")
	}
}

func TestRequireSessionJSONIs401(t *testing.T) {
	app := gatedApp(session.NewMemoryStore())
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/admin/me", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestRequireSessionAcceptsActiveSession(t *testing.T) {
	store := session.NewMemoryStore()
	_ = store.Save(context.Background(), "sid-1", session.Data{AccessToken: "tok"}, time.Hour)
	app := gatedApp(store)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sid-1"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || string(body) != "dashboard for admin@abstravel.com" {
		t.Errorf("status = %d, body = %q", resp.StatusCode, body)
	}
}

func TestRequireSessionDropsRevokedToken(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()
	_ = store.Save(ctx, "sid-2", session.Data{AccessToken: "revoked"}, time.Hour)
	app := gatedApp(store)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "sid-2"})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if _, err := store.Load(ctx, "sid-2"); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("stale session kept: %v", err)
	}
}

func TestNewAuthBearer(t *testing.T) {
	app := fiber.New()
	app.Use(NewAuth(AuthConfig{Auth: stubAuth{valid: "tok"}}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(IdentityFrom(c).UserID) })

	tests := []struct {
		header string
		want   int
	}{
		{"", fiber.StatusUnauthorized},
		{"Bearer nope", fiber.StatusUnauthorized},
		{"Bearer tok", fiber.StatusOK},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != tt.want {
			t.Errorf("%q: status = %d, want %d", tt.header, resp.StatusCode, tt.want)
		}
	}
}

type mediaForm struct {
	Image string `form:"image_url" validate:"required,mediaref"`
}

func TestMediaRef(t *testing.T) {
	v := NewValidator()
	tests := []struct {
		in string
		ok bool
	}{
		{"/P2.jpeg", true},
		{"https://images.pexels.com/photos/1/a.jpeg?w=800", true},
		{"http://unreachable.invalid/a.jpg", true},
		{"//cdn.example.com/a.jpg", false},
		{"ftp://example.com/a.jpg", false},
		{"javascript:alert(1)", false},
		{"not a url", false},
		{"", false},
	}
	for _, tt := range tests {
		err := v.Validate(mediaForm{Image: tt.in})
		if (err == nil) != tt.ok {
			t.Errorf("mediaref(%q) err = %v, want ok=%v", tt.in, err, tt.ok)
		}
		if err != nil {
			if got := FieldErrors(err); got["image_url"] == "" {
				t.Errorf("FieldErrors = %v, want image_url key", got)
			}
		}
	}
}

func TestValidateBody(t *testing.T) {
	app := fiber.New()
	v := NewValidator()
	app.Post("/", ValidateBody[mediaForm](v), func(c *fiber.Ctx) error {
		return c.SendString(Validated[mediaForm](c).Image)
	})

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	if resp := post("image_url=%2Fa.jpg"); resp.StatusCode != fiber.StatusOK {
		t.Errorf("valid body status = %d", resp.StatusCode)
	}
	resp := post("image_url=nope")
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("invalid body status = %d", resp.StatusCode)
	}
	var out struct {
		Fields map[string]string `json:"fields"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	if out.Fields["image_url"] != "mediaref" {
		t.Errorf("fields = %v", out.Fields)
	}
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/api/v1/x", func(c *fiber.Ctx) error { return fiber.ErrNotFound })
	app.Get("/x", func(c *fiber.Ctx) error { return errors.New("boom") })

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/x", nil))
	if resp.StatusCode != fiber.StatusNotFound || resp.Header.Get("Content-Type") != fiber.MIMEApplicationJSON {
		t.Errorf("api: status = %d, type = %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}

	resp, _ = app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusInternalServerError || string(body) != "Internal Server Error" {
		t.Errorf("page: status = %d, body = %q", resp.StatusCode, body)
	}
}

func TestLanguageResolution(t *testing.T) {
	app := fiber.New()
	app.Use(Language(LanguageConfig{Default: i18n.English}))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(string(Localizer(c).Lang))
	})

	tests := []struct {
		name   string
		query  string
		cookie string
		accept string
		want   string
	}{
		{"default", "", "", "", "en"},
		{"accept-language", "", "", "so-SO,so;q=0.9", "so"},
		{"cookie beats header", "", "en", "so", "en"},
		{"query beats cookie", "?lang=so", "en", "", "so"},
		{"bad query ignored", "?lang=fr", "so", "", "so"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: LangCookie, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			body, _ := io.ReadAll(resp.Body)
			if string(body) != tt.want {
				t.Errorf("lang = %q, want %q", body, tt.want)
			}
		})
	}
}

func TestLoginThrottle(t *testing.T) {
	store := session.NewMemoryStore()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Post("/admin/login", LoginThrottle(ThrottleConfig{Store: store, Max: 2, Window: time.Minute}), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusUnauthorized)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/admin/login", nil))
		if err != nil {
			t.Fatal(err)
		}
		codes = append(codes, resp.StatusCode)
	}
	if codes[0] != 401 || codes[1] != 401 || codes[2] != fiber.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}
}
