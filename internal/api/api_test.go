package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/abstravel/site/internal/admin"
	"github.com/abstravel/site/internal/backend"
	"github.com/abstravel/site/internal/content"
	"github.com/abstravel/site/internal/middleware"
	"github.com/abstravel/site/internal/session"
	"github.com/abstravel/site/internal/storage"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

func newApp(t *testing.T, db backend.Backend) *fiber.App {
	t.Helper()
	v := middleware.NewValidator()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	h := NewHandlers(content.NewService(db), admin.NewService(db, v), db)
	SetupRoutes(app, h, Deps{
		Validator: v,
		Throttle:  middleware.ThrottleConfig{Store: session.NewMemoryStore(), Max: 5, Window: time.Minute},
	})
	return app
}

func newLocal(t *testing.T) *storage.Storage {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	s, err := storage.NewStorage(t.TempDir(), storage.Options{
		AdminEmail:        "admin@abstravel.com",
		AdminPasswordHash: string(hash),
		TokenSecret:       "secret",
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func do(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestHealthCheck(t *testing.T) {
	app := newApp(t, newLocal(t))
	resp, out := do(t, app, http.MethodGet, "/api/v1/health", "", nil)
	if resp.StatusCode != fiber.StatusOK || out["status"] != "ok" {
		t.Errorf("status = %d, body = %v", resp.StatusCode, out)
	}
}

func TestPackagesFallBackWhenBackendIsDown(t *testing.T) {
	app := newApp(t, backend.NewClient("http://127.0.0.1:1", "anon", time.Second))

	resp, out := do(t, app, http.MethodGet, "/api/v1/packages", "", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	items, _ := out["items"].([]any)
	if out["fallback"] != true || len(items) != 3 {
		t.Fatalf("body = %v", out)
	}
	for i, want := range []string{"1", "2", "3"} {
		if id := items[i].(map[string]any)["id"]; id != want {
			t.Errorf("item %d id = %v, want %s", i, id, want)
		}
	}
}

func TestTranslations(t *testing.T) {
	app := newApp(t, newLocal(t))

	resp, out := do(t, app, http.MethodGet, "/api/v1/i18n/so", "", nil)
	if resp.StatusCode != fiber.StatusOK || out["lang"] != "so" {
		t.Fatalf("status = %d, body = %v", resp.StatusCode, out)
	}
	strs, _ := out["strings"].(map[string]any)
	if strs["home"] == "" || strs["home"] == "home" {
		t.Errorf("home = %v", strs["home"])
	}

	resp, _ = do(t, app, http.MethodGet, "/api/v1/i18n/fr", "", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("fr status = %d", resp.StatusCode)
	}
}

func signIn(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp, out := do(t, app, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"email": "admin@abstravel.com", "password": "admin123",
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("sign-in status = %d, body = %v", resp.StatusCode, out)
	}
	token, _ := out["access_token"].(string)
	if token == "" {
		t.Fatalf("no token in %v", out)
	}
	return token
}

func TestSignInRejectsBadInput(t *testing.T) {
	app := newApp(t, newLocal(t))

	resp, _ := do(t, app, http.MethodPost, "/api/v1/auth/token", "", map[string]string{"email": "not-an-email"})
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Errorf("invalid body status = %d", resp.StatusCode)
	}
	resp, _ = do(t, app, http.MethodPost, "/api/v1/auth/token", "", map[string]string{
		"email": "admin@abstravel.com", "password": "wrong",
	})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("wrong password status = %d", resp.StatusCode)
	}
}

func TestAdminRequiresToken(t *testing.T) {
	app := newApp(t, newLocal(t))
	resp, _ := do(t, app, http.MethodPost, "/api/v1/admin/packages", "", map[string]any{"title_en": "x"})
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestAdminPackageLifecycle(t *testing.T) {
	app := newApp(t, newLocal(t))
	token := signIn(t, app)

	pkg := map[string]any{
		"title_en":       "Economy Umrah Package",
		"title_so":       "Xirmada Cumrada Dhaqaale",
		"description_en": "Affordable",
		"description_so": "Qiimo jaban",
		"price":          1500,
		"duration":       "7 Days",
		"inclusions":     []string{"3-Star Hotels", "Airport Transfers", "Group Leader"},
		"image_url":      "/PACKAGE.jpeg",
		"type":           "umrah",
	}
	resp, created := do(t, app, http.MethodPost, "/api/v1/admin/packages", token, pkg)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("create status = %d, body = %v", resp.StatusCode, created)
	}
	id, _ := created["id"].(string)
	if id == "" || created["price"] != float64(1500) {
		t.Fatalf("created = %v", created)
	}

	_, list := do(t, app, http.MethodGet, "/api/v1/packages", "", nil)
	if list["fallback"] != false || len(list["items"].([]any)) != 1 {
		t.Errorf("public list = %v", list)
	}

	pkg["price"] = -1
	resp, out := do(t, app, http.MethodPut, "/api/v1/admin/packages/"+id, token, pkg)
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Errorf("negative price status = %d, body = %v", resp.StatusCode, out)
	}

	resp, _ = do(t, app, http.MethodDelete, "/api/v1/admin/packages/missing", token, nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("delete missing status = %d", resp.StatusCode)
	}
	resp, _ = do(t, app, http.MethodDelete, "/api/v1/admin/packages/"+id, token, nil)
	if resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("delete status = %d", resp.StatusCode)
	}

	_, stats := do(t, app, http.MethodGet, "/api/v1/admin/stats", token, nil)
	if stats["packages"] != float64(0) {
		t.Errorf("stats = %v", stats)
	}

	resp, _ = do(t, app, http.MethodPost, "/api/v1/admin/logout", token, nil)
	if resp.StatusCode != fiber.StatusNoContent {
		t.Errorf("logout status = %d", resp.StatusCode)
	}
	resp, _ = do(t, app, http.MethodGet, "/api/v1/admin/stats", token, nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("stats after logout status = %d", resp.StatusCode)
	}
}

func TestUnknownEndpoint(t *testing.T) {
	app := newApp(t, newLocal(t))
	resp, out := do(t, app, http.MethodGet, "/api/v1/nope", "", nil)
	if resp.StatusCode != fiber.StatusNotFound || out["error"] != "Endpoint not found" {
		t.Errorf("status = %d, body = %v", resp.StatusCode, out)
	}
}
