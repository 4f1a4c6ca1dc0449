// Package admin implements the content management operations behind the
// admin screens and the admin API.
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/abstravel/site/internal/backend"
	"github.com/abstravel/site/internal/content"
	"github.com/abstravel/site/internal/logger"
	"github.com/abstravel/site/internal/models"
	"golang.org/x/sync/errgroup"
)

// Validator checks struct tags, including mediaref.
type Validator interface {
	Validate(s any) error
}

// InvalidError reports a record that failed validation. No write was made.
type InvalidError struct {
	Err error
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid record: %v", e.Err)
}

func (e *InvalidError) Unwrap() error {
	return e.Err
}

// Collection is the admin view of one backend table. Reads and writes run
// with the admin's access token.
type Collection[T any] struct {
	db       backend.Backend
	table    backend.Table[T]
	validate Validator
	now      func() time.Time
	touch    func(rec *T, now time.Time)
}

func (c *Collection[T]) Name() string {
	return c.table.Name
}

// List returns the collection newest first. Failures are returned, never
// replaced with samples.
func (c *Collection[T]) List(ctx context.Context, token string) ([]T, error) {
	res, err := content.FetchList(ctx, c.table.Name, func(ctx context.Context) ([]T, error) {
		return c.table.List(ctx, c.db.AsUser(token))
	}, content.Propagate[T]())
	return res.Items, err
}

func (c *Collection[T]) Get(ctx context.Context, token, id string) (T, error) {
	return c.table.Get(ctx, c.db.AsUser(token), id)
}

// Save validates rec and inserts it when id is empty, otherwise replaces the
// record with that identity.
func (c *Collection[T]) Save(ctx context.Context, token, id string, rec T) (T, error) {
	var zero T
	if c.touch != nil {
		c.touch(&rec, c.now().UTC())
	}
	if err := c.validate.Validate(rec); err != nil {
		return zero, &InvalidError{Err: err}
	}

	db := c.db.AsUser(token)
	if id == "" {
		return c.table.Insert(ctx, db, rec)
	}
	return c.table.Update(ctx, db, id, rec)
}

func (c *Collection[T]) Delete(ctx context.Context, token, id string) error {
	return c.table.Delete(ctx, c.db.AsUser(token), id)
}

// Service groups the managed collections.
type Service struct {
	Packages *Collection[models.Package]
	Posts    *Collection[models.Post]
	Gallery  *Collection[models.GalleryItem]

	db       backend.Backend
	validate Validator
}

func NewService(db backend.Backend, v Validator) *Service {
	now := time.Now
	return &Service{
		Packages: &Collection[models.Package]{
			db: db, table: backend.Packages, validate: v, now: now,
			touch: func(p *models.Package, t time.Time) {
				p.ID, p.CreatedAt, p.UpdatedAt = "", time.Time{}, t
			},
		},
		Posts: &Collection[models.Post]{
			db: db, table: backend.Posts, validate: v, now: now,
			touch: func(p *models.Post, t time.Time) {
				p.ID, p.CreatedAt, p.UpdatedAt = "", time.Time{}, t
			},
		},
		Gallery: &Collection[models.GalleryItem]{
			db: db, table: backend.Gallery, validate: v, now: now,
			touch: func(g *models.GalleryItem, _ time.Time) {
				g.ID, g.CreatedAt = "", time.Time{}
			},
		},
		db:       db,
		validate: v,
	}
}

// CheckForm validates a submitted form before it is converted.
func (s *Service) CheckForm(form any) error {
	if err := s.validate.Validate(form); err != nil {
		return &InvalidError{Err: err}
	}
	return nil
}

// Stats are the dashboard counters.
type Stats struct {
	Packages int `json:"packages"`
	Posts    int `json:"posts"`
}

// Stats counts packages and posts concurrently. If either count fails both
// show zero.
func (s *Service) Stats(ctx context.Context, token string) Stats {
	db := s.db.AsUser(token)
	var stats Stats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := backend.Packages.Count(gctx, db)
		stats.Packages = n
		return err
	})
	g.Go(func() error {
		n, err := backend.Posts.Count(gctx, db)
		stats.Posts = n
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Get().Error().Err(err).Msg("Error fetching stats")
		return Stats{}
	}
	return stats
}
