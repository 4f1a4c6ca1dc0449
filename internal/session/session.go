// Package session keeps admin sessions and login attempt counters outside the
// process so a restart does not sign the admin out.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Load for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Data is what the site remembers about a signed-in admin.
type Data struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Store persists sessions by opaque id and counts login attempts per key.
type Store interface {
	Save(ctx context.Context, id string, data Data, ttl time.Duration) error
	Load(ctx context.Context, id string) (*Data, error)
	Delete(ctx context.Context, id string) error
	// Hit increments the counter for key and returns the new value. The
	// counter expires window after the first hit.
	Hit(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
	Close() error
}

// NewID returns a fresh random session id for the cookie.
func NewID() string {
	return uuid.NewString()
}

// hash keeps raw cookie values and client addresses out of the store.
func hash(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
