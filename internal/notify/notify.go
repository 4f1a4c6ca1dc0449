// Package notify carries one-shot notices across a redirect in a cookie.
package notify

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
)

const cookieName = "abs_flash"

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Flash is a single notice shown on the next rendered page.
type Flash struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (f *Flash) IsError() bool {
	return f != nil && f.Kind == KindError
}

func Success(c *fiber.Ctx, message string) {
	set(c, Flash{Kind: KindSuccess, Message: message})
}

func Error(c *fiber.Ctx, message string) {
	set(c, Flash{Kind: KindError, Message: message})
}

func set(c *fiber.Ctx, f Flash) {
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(time.Minute),
	})
}

// Pop returns the pending notice, if any, and clears it. Malformed cookies
// are dropped.
func Pop(c *fiber.Ctx) *Flash {
	raw := c.Cookies(cookieName)
	if raw == "" {
		return nil
	}
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})

	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var f Flash
	if err := json.Unmarshal(data, &f); err != nil || f.Message == "" {
		return nil
	}
	return &f
}
