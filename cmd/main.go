package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abstravel/site/internal/admin"
	"github.com/abstravel/site/internal/api"
	"github.com/abstravel/site/internal/backend"
	"github.com/abstravel/site/internal/config"
	"github.com/abstravel/site/internal/content"
	"github.com/abstravel/site/internal/i18n"
	"github.com/abstravel/site/internal/logger"
	"github.com/abstravel/site/internal/media"
	"github.com/abstravel/site/internal/middleware"
	"github.com/abstravel/site/internal/session"
	"github.com/abstravel/site/internal/storage"
	"github.com/abstravel/site/internal/web"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()

	output := "stdout"
	if cfg.LogFile != "" {
		output = cfg.LogFile
	}
	if err := logger.Init(logger.Config{
		Level:  cfg.LogLevel,
		Output: output,
		Pretty: cfg.LogPretty,
	}); err != nil {
		panic(err)
	}

	log := logger.Get()
	log.Info().Str("env", cfg.Env).Msg("Starting application...")

	db, err := openBackend(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize backend")
	}

	store, err := openSessions(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize session store")
	}
	defer func() {
		log.Info().Msg("Closing session store...")
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing session store")
		}
	}()

	var uploader web.Uploader
	if cfg.MediaEnabled() {
		u, err := media.NewUploader(context.Background(), media.Config{
			Endpoint:  cfg.R2Endpoint,
			AccessKey: cfg.R2AccessKey,
			SecretKey: cfg.R2SecretKey,
			Bucket:    cfg.R2Bucket,
			PublicURL: cfg.MediaPublicURL,
			MaxSize:   cfg.MaxUploadSize,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize media uploader")
		}
		uploader = u
		log.Info().Str("bucket", cfg.R2Bucket).Msg("Gallery uploads enabled")
	}

	validator := middleware.NewValidator()
	contentSvc := content.NewService(db)
	adminSvc := admin.NewService(db, validator)
	throttle := middleware.ThrottleConfig{
		Store:  store,
		Max:    int64(cfg.LoginMaxAttempts),
		Window: cfg.LoginWindow,
	}

	app := fiber.New(fiber.Config{
		Views:        web.NewEngine(),
		ReadTimeout:  cfg.HTTPTimeout,
		WriteTimeout: cfg.HTTPTimeout,
		IdleTimeout:  120 * time.Second,
		BodyLimit:    int(cfg.MaxUploadSize) + 1<<20,
		ErrorHandler: middleware.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.Language(middleware.LanguageConfig{
		Default: i18n.Lang(cfg.DefaultLanguage),
		Secure:  cfg.CookieSecure,
	}))
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(web.Assets()),
		MaxAge: 3600,
	}))

	api.SetupRoutes(app, api.NewHandlers(contentSvc, adminSvc, db), api.Deps{
		Validator: validator,
		Throttle:  throttle,
	})

	site := web.NewHandler(web.Options{
		Content:  contentSvc,
		Admin:    adminSvc,
		Sessions: admin.NewSessions(db, store, cfg.SessionTTL),
		Uploader: uploader,
		Site: web.Site{
			WhatsAppNumber: cfg.WhatsAppNumber,
			Phone:          cfg.ContactPhone,
			Email:          cfg.ContactEmail,
			Address:        cfg.ContactAddress,
		},
		CookieSecure: cfg.CookieSecure,
	})
	web.SetupRoutes(app, site, web.Deps{
		Session:  middleware.SessionConfig{Store: store, Auth: db},
		Throttle: throttle,
	})

	// Site images such as /P2.jpeg
	app.Static("/", cfg.PublicDir, fiber.Static{MaxAge: 86400})

	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

func openBackend(cfg *config.Config) (backend.Backend, error) {
	if !cfg.UseLocalBackend() {
		logger.Get().Info().Str("url", cfg.BackendURL).Msg("Using hosted backend")
		return backend.NewClient(cfg.BackendURL, cfg.BackendAnonKey, cfg.BackendTimeout), nil
	}

	logger.Get().Info().Str("path", cfg.LocalDataPath).Msg("Using local file backend")
	if cfg.LocalAdminPasswordHash == "" {
		logger.Get().Warn().Msg("LOCAL_ADMIN_PASSWORD_HASH is empty; admin sign-in is disabled")
	}
	s, err := storage.NewStorage(cfg.LocalDataPath, storage.Options{
		AdminEmail:        cfg.LocalAdminEmail,
		AdminPasswordHash: cfg.LocalAdminPasswordHash,
		TokenSecret:       cfg.TokenSecret,
		TokenTTL:          cfg.SessionTTL,
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openSessions(cfg *config.Config) (session.Store, error) {
	if cfg.RedisURL == "" {
		logger.Get().Warn().Msg("REDIS_URL is empty; sessions are kept in memory")
		return session.NewMemoryStore(), nil
	}
	store, err := session.NewRedisStore(cfg.RedisURL, cfg.RedisPrefix)
	if err != nil {
		return nil, err
	}
	return store, nil
}
