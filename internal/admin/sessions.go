package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/abstravel/site/internal/backend"
	"github.com/abstravel/site/internal/logger"
	"github.com/abstravel/site/internal/session"
)

// Sessions signs the admin in and out and keeps the session store in step
// with the backend.
type Sessions struct {
	auth  backend.Auth
	store session.Store
	ttl   time.Duration
}

func NewSessions(auth backend.Auth, store session.Store, ttl time.Duration) *Sessions {
	return &Sessions{auth: auth, store: store, ttl: ttl}
}

// TTL is how long a stored session lives.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Login signs in with the backend and returns a new session id for the
// cookie.
func (s *Sessions) Login(ctx context.Context, email, password string) (string, *backend.Session, error) {
	sess, err := s.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	ttl := s.ttl
	if left := time.Until(sess.ExpiresAt); !sess.ExpiresAt.IsZero() && left > 0 && left < ttl {
		ttl = left
	}

	sid := session.NewID()
	err = s.store.Save(ctx, sid, session.Data{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		UserID:       sess.User.ID,
		Email:        sess.User.Email,
		ExpiresAt:    sess.ExpiresAt,
	}, ttl)
	if err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}
	return sid, sess, nil
}

// Logout signs out with the backend and forgets the session. A failed
// sign-out is logged; the local session is dropped regardless.
func (s *Sessions) Logout(ctx context.Context, sid, accessToken string) {
	if err := s.auth.SignOut(ctx, accessToken); err != nil {
		logger.Get().Error().Err(err).Msg("Sign-out failed")
	}
	if sid == "" {
		return
	}
	if err := s.store.Delete(ctx, sid); err != nil {
		logger.Get().Error().Err(err).Msg("Failed to delete session")
	}
}
