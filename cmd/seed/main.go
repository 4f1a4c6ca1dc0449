// Command seed loads the sample packages, posts and gallery items into the
// configured backend, or prints a password hash for the local admin.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abstravel/site/internal/backend"
	"github.com/abstravel/site/internal/config"
	"github.com/abstravel/site/internal/content"
	"github.com/abstravel/site/internal/logger"
	"github.com/abstravel/site/internal/models"
	"github.com/abstravel/site/internal/storage"
)

func main() {
	email := flag.String("email", "", "admin email used to sign in")
	password := flag.String("password", "", "admin password")
	only := flag.String("only", "packages,posts,gallery", "comma separated collections to seed")
	hash := flag.String("hash", "", "print the bcrypt hash of this password and exit")
	flag.Parse()

	if *hash != "" {
		h, err := storage.HashPassword(*hash)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(h)
		return
	}

	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Output: "stdout", Pretty: true}); err != nil {
		panic(err)
	}
	log := logger.Get()

	if *email == "" {
		*email = cfg.LocalAdminEmail
	}
	if *password == "" {
		*password = os.Getenv("ADMIN_PASSWORD")
	}

	var db backend.Backend
	if cfg.UseLocalBackend() {
		s, err := storage.NewStorage(cfg.LocalDataPath, storage.Options{
			AdminEmail:        cfg.LocalAdminEmail,
			AdminPasswordHash: cfg.LocalAdminPasswordHash,
			TokenSecret:       cfg.TokenSecret,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open local backend")
		}
		db = s
	} else {
		db = backend.NewClient(cfg.BackendURL, cfg.BackendAnonKey, cfg.BackendTimeout)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sess, err := db.SignInWithPassword(ctx, *email, *password)
	if err != nil {
		log.Fatal().Err(err).Str("email", *email).Msg("Sign-in failed")
	}
	defer func() {
		if err := db.SignOut(ctx, sess.AccessToken); err != nil {
			log.Warn().Err(err).Msg("Sign-out failed")
		}
	}()
	scope := db.AsUser(sess.AccessToken)

	for _, name := range strings.Split(*only, ",") {
		name = strings.TrimSpace(name)
		var n int
		switch name {
		case backend.Packages.Name:
			n, err = seed(ctx, scope, backend.Packages, content.SamplePackages())
		case backend.Posts.Name:
			n, err = seed(ctx, scope, backend.Posts, content.SamplePosts())
		case backend.Gallery.Name:
			n, err = seed(ctx, scope, backend.Gallery, content.SampleGallery())
		case "":
			continue
		default:
			log.Fatal().Str("collection", name).Msg("Unknown collection")
		}
		if err != nil {
			log.Fatal().Err(err).Str("collection", name).Int("inserted", n).Msg("Seeding failed")
		}
		log.Info().Str("collection", name).Int("inserted", n).Msg("Seeded")
	}
}

// seed inserts the samples without their fixed ids so the backend assigns
// fresh ones.
func seed[T any](ctx context.Context, db backend.Collections, table backend.Table[T], samples []T) (int, error) {
	existing, err := table.Count(ctx, db)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		logger.Get().Info().Str("collection", table.Name).Int("existing", existing).Msg("Collection not empty, skipping")
		return 0, nil
	}

	// Oldest first so the newest-first listing keeps the sample order.
	n := 0
	for i := len(samples) - 1; i >= 0; i-- {
		if _, err := table.Insert(ctx, db, clearIdentity(samples[i])); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func clearIdentity[T any](rec T) T {
	switch r := any(&rec).(type) {
	case *models.Package:
		r.ID, r.CreatedAt = "", time.Time{}
	case *models.Post:
		r.ID, r.CreatedAt = "", time.Time{}
	case *models.GalleryItem:
		r.ID, r.CreatedAt = "", time.Time{}
	}
	return rec
}
