// Package backend talks to the hosted database and auth service that owns all
// site content. Every failure it reports matches ErrFailure; callers do not
// discriminate further.
package backend

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrFailure is matched by every error returned from a backend operation.
var ErrFailure = errors.New("backend request failed")

// Error describes one failed backend operation.
type Error struct {
	Op         string
	Collection string
	Status     int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	target := e.Op
	if e.Collection != "" {
		target = e.Op + " " + e.Collection
	}
	switch {
	case e.Err != nil:
		return fmt.Sprintf("backend %s: %v", target, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("backend %s: status %d: %s", target, e.Status, e.Message)
	default:
		return fmt.Sprintf("backend %s: %s", target, e.Message)
	}
}

// Is makes errors.Is(err, ErrFailure) true for every *Error.
func (e *Error) Is(target error) bool {
	return target == ErrFailure
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Collections is the per-collection record API. List orders by creation
// time, newest first. Update is a full replacement. Update and Delete fail
// when no record has the given identity.
type Collections interface {
	List(ctx context.Context, collection string, out any) error
	Get(ctx context.Context, collection, id string, out any) error
	Insert(ctx context.Context, collection string, record, out any) error
	Update(ctx context.Context, collection, id string, record, out any) error
	Delete(ctx context.Context, collection, id string) error
	Count(ctx context.Context, collection string) (int, error)
}

// User is the identity behind a session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is what a successful password sign-in returns.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	User         User      `json:"user"`
}

// Auth holds the session operations.
type Auth interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)
	GetUser(ctx context.Context, accessToken string) (*User, error)
	SignOut(ctx context.Context, accessToken string) error
}

// Backend is the full handle injected into handlers. AsUser returns a view
// of the collections authorised as the signed-in admin.
type Backend interface {
	Collections
	Auth
	AsUser(accessToken string) Collections
}
