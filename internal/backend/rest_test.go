package backend

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

	"github.com/abstravel/site/internal/models"
)

type recorded struct {
	method string
	path   string
	query  string
	auth   string
	prefer string
	accept string
	body   map[string]any
}

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			auth:   r.Header.Get("Authorization"),
			prefer: r.Header.Get("Prefer"),
			accept: r.Header.Get("Accept"),
		}
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &rec.body)
		}
		r.Body = io.NopCloser(bytes.NewReader(data))
		calls = append(calls, rec)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "anon-key", 5*time.Second), &calls
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListOrdersByCreationDescending(t *testing.T) {
	client, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": "b", "title_en": "Newer", "price": 2500, "type": "umrah", "inclusions": []string{"x"}},
			{"id": "a", "title_en": "Older", "price": 1500, "type": "hajj"},
		})
	})

	pkgs, err := Packages.List(context.Background(), client)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(pkgs) != 2 || pkgs[0].ID != "b" || pkgs[1].Price != 1500 {
		t.Fatalf("unexpected packages: %+v", pkgs)
	}

	call := (*calls)[0]
	if call.path != "/rest/v1/packages" {
		t.Errorf("path = %q", call.path)
	}
	if call.query != "order=created_at.desc&select=%2A" {
		t.Errorf("query = %q", call.query)
	}
	if call.auth != "Bearer anon-key" {
		t.Errorf("Authorization = %q", call.auth)
	}
}

func TestListEmptyIsNotNil(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})
	posts, err := Posts.List(context.Background(), client)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if posts == nil || len(posts) != 0 {
		t.Errorf("posts = %#v, want empty non-nil slice", posts)
	}
}

func TestMissingCollectionIsFailure(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"code":    "42P01",
			"message": `relation "public.gallery" does not exist`,
		})
	})

	_, err := Gallery.List(context.Background(), client)
	if !errors.Is(err, ErrFailure) {
		t.Fatalf("err = %v, want ErrFailure", err)
	}
	var be *Error
	if !errors.As(err, &be) || be.Status != http.StatusNotFound || be.Collection != "gallery" {
		t.Fatalf("err = %#v", err)
	}
	if be.Message != `relation "public.gallery" does not exist` {
		t.Errorf("Message = %q", be.Message)
	}
}

func TestTransportErrorIsFailure(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "anon", time.Second)
	_, err := Packages.List(context.Background(), client)
	if !errors.Is(err, ErrFailure) {
		t.Fatalf("err = %v, want ErrFailure", err)
	}
}

func TestGetRequestsSingleObject(t *testing.T) {
	client, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": "42", "title_en": "Update", "image_url": nil})
	})

	post, err := Posts.Get(context.Background(), client, "42")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if post.ID != "42" || post.ImageURL != nil {
		t.Errorf("post = %+v", post)
	}
	call := (*calls)[0]
	if call.accept != singleJSON {
		t.Errorf("Accept = %q", call.accept)
	}
	if call.query != "id=eq.42&select=%2A" {
		t.Errorf("query = %q", call.query)
	}
}

func TestGetNoRowsIsFailure(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotAcceptable, map[string]string{"message": "JSON object requested, multiple (or no) rows returned"})
	})
	if _, err := Packages.Get(context.Background(), client, "missing"); !errors.Is(err, ErrFailure) {
		t.Fatalf("err = %v, want ErrFailure", err)
	}
}

func TestInsertAsUserSendsNumericPrice(t *testing.T) {
	client, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		body["id"] = "new-id"
		body["created_at"] = "2025-01-02T03:04:05Z"
		writeJSON(w, http.StatusCreated, []any{body})
	})

	in := models.Package{
		TitleEN:    "Economy Umrah Package",
		Price:      1500,
		Duration:   "7 Days",
		Type:       models.CategoryUmrah,
		Inclusions: []string{"3-Star Hotels", "Airport Transfers", "Group Leader"},
	}
	out, err := Packages.Insert(context.Background(), client.AsUser("user-token"), in)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if out.ID != "new-id" || len(out.Inclusions) != 3 || out.Price != 1500 {
		t.Errorf("stored = %+v", out)
	}

	call := (*calls)[0]
	if call.method != http.MethodPost || call.prefer != "return=representation" {
		t.Errorf("method/prefer = %s/%s", call.method, call.prefer)
	}
	if call.auth != "Bearer user-token" {
		t.Errorf("Authorization = %q", call.auth)
	}
	if price, ok := call.body["price"].(float64); !ok || price != 1500 {
		t.Errorf("price sent as %#v", call.body["price"])
	}
	if _, ok := call.body["id"]; ok {
		t.Error("id must not be sent on insert")
	}
}

func TestUpdateAndDeleteWithoutRowsFail(t *testing.T) {
	client, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	})

	_, err := Posts.Update(context.Background(), client, "nope", models.Post{TitleEN: "x"})
	if !errors.Is(err, ErrFailure) {
		t.Errorf("update err = %v", err)
	}
	err = Posts.Delete(context.Background(), client, "nope")
	if !errors.Is(err, ErrFailure) {
		t.Errorf("delete err = %v", err)
	}

	if got := (*calls)[0]; got.method != http.MethodPatch || got.query != "id=eq.nope" {
		t.Errorf("update call = %+v", got)
	}
	if got := (*calls)[1]; got.method != http.MethodDelete || got.prefer != "return=representation" {
		t.Errorf("delete call = %+v", got)
	}
}

func TestDeleteExisting(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{map[string]any{"id": "1"}})
	})
	if err := Gallery.Delete(context.Background(), client, "1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestCountReadsContentRange(t *testing.T) {
	client, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Range", "0-24/25")
		w.WriteHeader(http.StatusOK)
	})
	n, err := Packages.Count(context.Background(), client)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 25 {
		t.Errorf("Count = %d, want 25", n)
	}
	if got := (*calls)[0]; got.method != http.MethodHead || got.prefer != "count=exact" {
		t.Errorf("count call = %+v", got)
	}
}

func TestParseContentRange(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"0-24/25", 25, true},
		{"*/0", 0, true},
		{"0-9/*", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseContentRange(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseContentRange(%q) = %d, %v", tt.in, got, ok)
		}
	}
}

func TestSignInGetUserSignOut(t *testing.T) {
	client, calls := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["password"] != "admin123" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_grant", "error_description": "Invalid login credentials"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"access_token":  "tok",
				"refresh_token": "ref",
				"expires_in":    3600,
				"user":          map[string]string{"id": "u1", "email": body["email"]},
			})
		case "/auth/v1/user":
			if r.Header.Get("Authorization") != "Bearer tok" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "invalid JWT"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"id": "u1", "email": "admin@abstravel.com"})
		case "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)
		}
	})
	ctx := context.Background()

	_, err := client.SignInWithPassword(ctx, "admin@abstravel.com", "wrong")
	var be *Error
	if !errors.As(err, &be) || be.Message != "Invalid login credentials" {
		t.Fatalf("bad credentials err = %v", err)
	}

	sess, err := client.SignInWithPassword(ctx, "admin@abstravel.com", "admin123")
	if err != nil {
		t.Fatalf("SignInWithPassword() error = %v", err)
	}
	if sess.AccessToken != "tok" || sess.User.ID != "u1" {
		t.Errorf("session = %+v", sess)
	}
	if time.Until(sess.ExpiresAt) < 59*time.Minute {
		t.Errorf("ExpiresAt = %v, want about an hour from now", sess.ExpiresAt)
	}
	if (*calls)[1].query != "grant_type=password" {
		t.Errorf("token query = %q", (*calls)[1].query)
	}

	user, err := client.GetUser(ctx, "tok")
	if err != nil || user.Email != "admin@abstravel.com" {
		t.Fatalf("GetUser() = %+v, %v", user, err)
	}
	if _, err := client.GetUser(ctx, "stale"); !errors.Is(err, ErrFailure) {
		t.Errorf("stale token err = %v", err)
	}
	if _, err := client.GetUser(ctx, ""); !errors.Is(err, ErrFailure) {
		t.Errorf("empty token err = %v", err)
	}
	if err := client.SignOut(ctx, "tok"); err != nil {
		t.Errorf("SignOut() error = %v", err)
	}
}
