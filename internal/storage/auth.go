package storage

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/abstravel/site/internal/backend"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "abs-travel-local"

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type localAuth struct {
	email  string
	hash   []byte
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

func newLocalAuth(opts Options, now func() time.Time) *localAuth {
	secret := []byte(opts.TokenSecret)
	if len(secret) == 0 {
		// Tokens then only live as long as the process.
		secret = []byte(uuid.NewString() + uuid.NewString())
	}
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &localAuth{
		email:   strings.ToLower(strings.TrimSpace(opts.AdminEmail)),
		hash:    []byte(opts.AdminPasswordHash),
		secret:  secret,
		ttl:     ttl,
		now:     now,
		revoked: make(map[string]time.Time),
	}
}

func authError(op, msg string) error {
	return &backend.Error{Op: op, Status: http.StatusUnauthorized, Message: msg}
}

func (a *localAuth) signIn(email, password string) (*backend.Session, error) {
	if len(a.hash) == 0 || a.email == "" {
		return nil, authError("sign-in", "local admin account is not configured")
	}
	if strings.ToLower(strings.TrimSpace(email)) != a.email {
		return nil, authError("sign-in", "Invalid login credentials")
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(password)); err != nil {
		return nil, authError("sign-in", "Invalid login credentials")
	}

	now := a.now()
	expires := now.Add(a.ttl)
	c := claims{
		Email: a.email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   "local-admin",
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(a.secret)
	if err != nil {
		return nil, &backend.Error{Op: "sign-in", Err: fmt.Errorf("sign token: %w", err)}
	}
	return &backend.Session{
		AccessToken: token,
		ExpiresAt:   expires,
		User:        backend.User{ID: c.Subject, Email: a.email},
	}, nil
}

func (a *localAuth) parse(op, token string) (*claims, error) {
	if token == "" {
		return nil, authError(op, "no access token")
	}
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, authError(op, "invalid token: "+err.Error())
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.revoked[c.ID]; ok {
		return nil, authError(op, "session has been signed out")
	}
	return &c, nil
}

func (a *localAuth) user(token string) (*backend.User, error) {
	c, err := a.parse("get-user", token)
	if err != nil {
		return nil, err
	}
	return &backend.User{ID: c.Subject, Email: c.Email}, nil
}

func (a *localAuth) signOut(token string) error {
	c, err := a.parse("sign-out", token)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	now := a.now()
	for id, exp := range a.revoked {
		if exp.Before(now) {
			delete(a.revoked, id)
		}
	}
	exp := now.Add(a.ttl)
	if c.ExpiresAt != nil {
		exp = c.ExpiresAt.Time
	}
	a.revoked[c.ID] = exp
	return nil
}

// HashPassword produces a value for LOCAL_ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
