// Package content reads the public collections. A failed read falls back to
// the built-in samples so the public pages always render.
package content

import (
	"context"

	"github.com/abstravel/site/internal/backend"
	"github.com/abstravel/site/internal/logger"
	"github.com/abstravel/site/internal/models"
)

// Strategy decides what a failed list read turns into.
type Strategy[T any] struct {
	fallback  func() []T
	propagate bool
}

// UseFixedFallback replaces a failed read with items. Each call of the
// strategy hands out a fresh copy.
func UseFixedFallback[T any](items func() []T) Strategy[T] {
	return Strategy[T]{fallback: items}
}

// Propagate returns the read error to the caller.
func Propagate[T any]() Strategy[T] {
	return Strategy[T]{propagate: true}
}

// Result is a list read. Fallback is set when Items are the samples.
type Result[T any] struct {
	Items    []T  `json:"items"`
	Fallback bool `json:"fallback"`
}

// FetchList performs one read-all and applies onError when it fails.
func FetchList[T any](ctx context.Context, name string, list func(context.Context) ([]T, error), onError Strategy[T]) (Result[T], error) {
	items, err := list(ctx)
	if err == nil {
		return Result[T]{Items: items}, nil
	}
	if onError.propagate || onError.fallback == nil {
		return Result[T]{}, err
	}

	logger.Get().Warn().
		Err(err).
		Str("collection", name).
		Msg("Falling back to sample data")
	return Result[T]{Items: onError.fallback(), Fallback: true}, nil
}

// Service serves the public lists from an anonymous backend handle.
type Service struct {
	db backend.Collections
}

func NewService(db backend.Collections) *Service {
	return &Service{db: db}
}

func (s *Service) Packages(ctx context.Context) Result[models.Package] {
	res, _ := FetchList(ctx, backend.Packages.Name, s.listPackages, UseFixedFallback(SamplePackages))
	return res
}

func (s *Service) Posts(ctx context.Context) Result[models.Post] {
	res, _ := FetchList(ctx, backend.Posts.Name, s.listPosts, UseFixedFallback(SamplePosts))
	return res
}

func (s *Service) Gallery(ctx context.Context) Result[models.GalleryItem] {
	res, _ := FetchList(ctx, backend.Gallery.Name, s.listGallery, UseFixedFallback(SampleGallery))
	return res
}

func (s *Service) listPackages(ctx context.Context) ([]models.Package, error) {
	return backend.Packages.List(ctx, s.db)
}

func (s *Service) listPosts(ctx context.Context) ([]models.Post, error) {
	return backend.Posts.List(ctx, s.db)
}

func (s *Service) listGallery(ctx context.Context) ([]models.GalleryItem, error) {
	return backend.Gallery.List(ctx, s.db)
}
