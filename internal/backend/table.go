package backend

import (
	"context"

	"github.com/abstravel/site/internal/models"
)

// Table binds a record type to a collection name. The handle is passed to
// each call so the same table serves anonymous reads and admin writes.
type Table[T any] struct {
	Name string
}

var (
	Packages = Table[models.Package]{Name: "packages"}
	Posts    = Table[models.Post]{Name: "posts"}
	Gallery  = Table[models.GalleryItem]{Name: "gallery"}
)

// List returns every record, newest first. It never returns a nil slice on
// success.
func (t Table[T]) List(ctx context.Context, db Collections) ([]T, error) {
	var out []T
	if err := db.List(ctx, t.Name, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (t Table[T]) Get(ctx context.Context, db Collections, id string) (T, error) {
	var out T
	err := db.Get(ctx, t.Name, id, &out)
	return out, err
}

// Insert stores rec and returns the stored record with its identity.
func (t Table[T]) Insert(ctx context.Context, db Collections, rec T) (T, error) {
	var out T
	err := db.Insert(ctx, t.Name, rec, &out)
	return out, err
}

// Update replaces the record with identity id.
func (t Table[T]) Update(ctx context.Context, db Collections, id string, rec T) (T, error) {
	var out T
	err := db.Update(ctx, t.Name, id, rec, &out)
	return out, err
}

func (t Table[T]) Delete(ctx context.Context, db Collections, id string) error {
	return db.Delete(ctx, t.Name, id)
}

func (t Table[T]) Count(ctx context.Context, db Collections) (int, error) {
	return db.Count(ctx, t.Name)
}
