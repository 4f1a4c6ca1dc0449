package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`

	// Hosted backend. When BackendURL is empty the local file backend is used.
	BackendURL     string        `json:"backend_url"`
	BackendAnonKey string        `json:"-"`
	BackendTimeout time.Duration `json:"backend_timeout"`

	// Local backend
	LocalDataPath          string `json:"local_data_path"`
	LocalAdminEmail        string `json:"local_admin_email"`
	LocalAdminPasswordHash string `json:"-"`
	TokenSecret            string `json:"-"`

	// Sessions. An empty RedisURL keeps sessions in process memory.
	RedisURL         string        `json:"redis_url"`
	RedisPrefix      string        `json:"redis_prefix"`
	SessionTTL       time.Duration `json:"session_ttl"`
	CookieSecure     bool          `json:"cookie_secure"`
	LoginMaxAttempts int           `json:"login_max_attempts"`
	LoginWindow      time.Duration `json:"login_window"`

	// Site
	DefaultLanguage string `json:"default_language"`
	WhatsAppNumber  string `json:"whatsapp_number"`
	ContactPhone    string `json:"contact_phone"`
	ContactEmail    string `json:"contact_email"`
	ContactAddress  string `json:"contact_address"`
	PublicDir       string `json:"public_dir"`

	// CloudFlare R2 media bucket
	R2Endpoint     string `json:"r2_endpoint"`
	R2AccessKey    string `json:"-"`
	R2SecretKey    string `json:"-"`
	R2Bucket       string `json:"r2_bucket"`
	MediaPublicURL string `json:"media_public_url"`
	MaxUploadSize  int64  `json:"max_upload_size"`

	// Logging
	LogLevel  string `json:"log_level"`
	LogFile   string `json:"log_file"`
	LogPretty bool   `json:"log_pretty"`
}

// Load loads configuration from the environment and exits on invalid values.
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from the current environment and validates it.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		BackendURL:     strings.TrimRight(getEnv("BACKEND_URL", ""), "/"),
		BackendAnonKey: getEnv("BACKEND_ANON_KEY", ""),
		BackendTimeout: getEnvAsDuration("BACKEND_TIMEOUT", 15*time.Second),

		LocalDataPath:          getEnv("LOCAL_DATA_PATH", "./data"),
		LocalAdminEmail:        getEnv("LOCAL_ADMIN_EMAIL", "admin@abstravel.com"),
		LocalAdminPasswordHash: getEnv("LOCAL_ADMIN_PASSWORD_HASH", ""),
		TokenSecret:            getEnv("TOKEN_SECRET", ""),

		RedisURL:         getEnv("REDIS_URL", ""),
		RedisPrefix:      getEnv("REDIS_PREFIX", "abs:"),
		SessionTTL:       getEnvAsDuration("SESSION_TTL", 12*time.Hour),
		CookieSecure:     getEnvAsBool("COOKIE_SECURE", false),
		LoginMaxAttempts: getEnvAsInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginWindow:      getEnvAsDuration("LOGIN_WINDOW", 15*time.Minute),

		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		WhatsAppNumber:  getEnv("WHATSAPP_NUMBER", "254700123456"),
		ContactPhone:    getEnv("CONTACT_PHONE", "+254 700 123 456"),
		ContactEmail:    getEnv("CONTACT_EMAIL", "info@abstravel.com"),
		ContactAddress:  getEnv("CONTACT_ADDRESS", "Nairobi, Kenya"),
		PublicDir:       getEnv("PUBLIC_DIR", "./public"),

		R2Endpoint:     getEnv("R2_ENDPOINT", ""),
		R2AccessKey:    getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey:    getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:       getEnv("R2_BUCKET", "abs-media"),
		MediaPublicURL: strings.TrimRight(getEnv("MEDIA_PUBLIC_URL", ""), "/"),
		MaxUploadSize:  getEnvAsInt64("MAX_UPLOAD_SIZE", 10<<20), // 10MB

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFile:   getEnv("LOG_FILE", ""),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.BackendURL != "" && c.BackendAnonKey == "" {
		errs = append(errs, errors.New("BACKEND_ANON_KEY is required when BACKEND_URL is set"))
	}
	if c.BackendURL == "" && c.LocalDataPath == "" {
		errs = append(errs, errors.New("LOCAL_DATA_PATH is required without BACKEND_URL"))
	}
	if c.DefaultLanguage != "en" && c.DefaultLanguage != "so" {
		errs = append(errs, fmt.Errorf("DEFAULT_LANGUAGE must be en or so, got %q", c.DefaultLanguage))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.LoginMaxAttempts <= 0 {
		errs = append(errs, errors.New("LOGIN_MAX_ATTEMPTS must be positive"))
	}
	if c.MediaEnabled() && c.MediaPublicURL == "" {
		errs = append(errs, errors.New("MEDIA_PUBLIC_URL is required when R2 uploads are configured"))
	}
	return errors.Join(errs...)
}

// UseLocalBackend reports whether content lives in the local file backend.
func (c *Config) UseLocalBackend() bool {
	return c.BackendURL == ""
}

// MediaEnabled reports whether gallery uploads can be sent to R2.
func (c *Config) MediaEnabled() bool {
	return c.R2Endpoint != "" && c.R2AccessKey != "" && c.R2SecretKey != ""
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsInt64(name string, defaultVal int64) int64 {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %t", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
