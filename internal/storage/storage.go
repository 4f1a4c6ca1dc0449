// Package storage is a file-backed stand-in for the hosted backend. Each
// collection is one JSON file; admin sign-in checks a bcrypt hash and issues
// HS256 access tokens.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/abstravel/site/internal/backend"
	"github.com/google/uuid"
)

var collectionName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

type row = map[string]any

// Storage implements backend.Backend on the local filesystem.
type Storage struct {
	basePath string
	mu       sync.RWMutex
	now      func() time.Time
	auth     *localAuth
}

// Options configures the local admin account.
type Options struct {
	AdminEmail        string
	AdminPasswordHash string
	TokenSecret       string
	TokenTTL          time.Duration
}

// NewStorage creates basePath/collections if needed.
func NewStorage(basePath string, opts Options) (*Storage, error) {
	if err := os.MkdirAll(filepath.Join(basePath, "collections"), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	s := &Storage{
		basePath: basePath,
		now:      time.Now,
	}
	s.auth = newLocalAuth(opts, func() time.Time { return s.now() })
	return s, nil
}

var _ backend.Backend = (*Storage)(nil)

func (s *Storage) path(collection string) string {
	return filepath.Join(s.basePath, "collections", collection+".json")
}

func (s *Storage) readRows(collection string) ([]row, error) {
	data, err := os.ReadFile(s.path(collection))
	if os.IsNotExist(err) {
		return []row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collection, err)
	}
	var rows []row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", collection, err)
	}
	return rows, nil
}

func (s *Storage) writeRows(collection string, rows []row) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", collection, err)
	}
	tmp := s.path(collection) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", collection, err)
	}
	if err := os.Rename(tmp, s.path(collection)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", collection, err)
	}
	return nil
}

// check rejects cancelled contexts and unsafe collection names.
func check(ctx context.Context, op, collection string) error {
	select {
	case <-ctx.Done():
		return &backend.Error{Op: op, Collection: collection, Err: ctx.Err()}
	default:
	}
	if !collectionName.MatchString(collection) {
		return &backend.Error{Op: op, Collection: collection, Status: http.StatusBadRequest, Message: "invalid collection name"}
	}
	return nil
}

func notFound(op, collection string) error {
	return &backend.Error{Op: op, Collection: collection, Status: http.StatusNotFound, Message: "no matching record"}
}

func wrap(op, collection string, err error) error {
	return &backend.Error{Op: op, Collection: collection, Err: err}
}

func decode(src, out any) error {
	if out == nil {
		return nil
	}
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func toRow(record any) (row, error) {
	var r row
	if err := decode(record, &r); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("record must be a JSON object")
	}
	return r, nil
}

func indexOf(rows []row, id string) int {
	for i, r := range rows {
		if rid, _ := r["id"].(string); rid == id {
			return i
		}
	}
	return -1
}

func createdAt(r row) time.Time {
	s, _ := r["created_at"].(string)
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

// List returns all rows, newest first.
func (s *Storage) List(ctx context.Context, collection string, out any) error {
	if err := check(ctx, "list", collection); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.readRows(collection)
	if err != nil {
		return wrap("list", collection, err)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return createdAt(rows[i]).After(createdAt(rows[j]))
	})
	if err := decode(rows, out); err != nil {
		return wrap("list", collection, err)
	}
	return nil
}

func (s *Storage) Get(ctx context.Context, collection, id string, out any) error {
	if err := check(ctx, "get", collection); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.readRows(collection)
	if err != nil {
		return wrap("get", collection, err)
	}
	i := indexOf(rows, id)
	if i < 0 {
		return notFound("get", collection)
	}
	if err := decode(rows[i], out); err != nil {
		return wrap("get", collection, err)
	}
	return nil
}

// Insert assigns the identity and creation time.
func (s *Storage) Insert(ctx context.Context, collection string, record, out any) error {
	if err := check(ctx, "insert", collection); err != nil {
		return err
	}
	r, err := toRow(record)
	if err != nil {
		return wrap("insert", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readRows(collection)
	if err != nil {
		return wrap("insert", collection, err)
	}
	r["id"] = uuid.NewString()
	r["created_at"] = s.now().UTC().Format(time.RFC3339Nano)
	rows = append(rows, r)
	if err := s.writeRows(collection, rows); err != nil {
		return wrap("insert", collection, err)
	}
	if err := decode(r, out); err != nil {
		return wrap("insert", collection, err)
	}
	return nil
}

// Update replaces every field except the identity and creation time.
func (s *Storage) Update(ctx context.Context, collection, id string, record, out any) error {
	if err := check(ctx, "update", collection); err != nil {
		return err
	}
	r, err := toRow(record)
	if err != nil {
		return wrap("update", collection, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readRows(collection)
	if err != nil {
		return wrap("update", collection, err)
	}
	i := indexOf(rows, id)
	if i < 0 {
		return notFound("update", collection)
	}
	r["id"] = rows[i]["id"]
	r["created_at"] = rows[i]["created_at"]
	rows[i] = r
	if err := s.writeRows(collection, rows); err != nil {
		return wrap("update", collection, err)
	}
	if err := decode(r, out); err != nil {
		return wrap("update", collection, err)
	}
	return nil
}

func (s *Storage) Delete(ctx context.Context, collection, id string) error {
	if err := check(ctx, "delete", collection); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.readRows(collection)
	if err != nil {
		return wrap("delete", collection, err)
	}
	i := indexOf(rows, id)
	if i < 0 {
		return notFound("delete", collection)
	}
	rows = append(rows[:i], rows[i+1:]...)
	if err := s.writeRows(collection, rows); err != nil {
		return wrap("delete", collection, err)
	}
	return nil
}

func (s *Storage) Count(ctx context.Context, collection string) (int, error) {
	if err := check(ctx, "count", collection); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.readRows(collection)
	if err != nil {
		return 0, wrap("count", collection, err)
	}
	return len(rows), nil
}

// AsUser returns the same store; the local backend has no row-level rules.
func (s *Storage) AsUser(string) backend.Collections {
	return s
}

func (s *Storage) SignInWithPassword(ctx context.Context, email, password string) (*backend.Session, error) {
	return s.auth.signIn(email, password)
}

func (s *Storage) GetUser(ctx context.Context, accessToken string) (*backend.User, error) {
	return s.auth.user(accessToken)
}

func (s *Storage) SignOut(ctx context.Context, accessToken string) error {
	return s.auth.signOut(accessToken)
}
