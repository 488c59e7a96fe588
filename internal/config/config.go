// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pkordes/european-living/internal/geocode"
	"github.com/pkordes/european-living/internal/signup"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFile, when set, sends logs to a rotating file instead of stdout.
	LogFile string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// Redis backs the geocode and category caches. Caching is off when
	// Redis.Addr is empty.
	Redis Redis

	// AdminJWTSecret signs admin bearer tokens. The admin routes are not
	// mounted when it is empty.
	AdminJWTSecret string

	// GeocoderURL and GeocoderCountry configure address lookups.
	// Defaults to Nominatim restricted to Germany ("de").
	GeocoderURL     string
	GeocoderCountry string

	// SignupRelayURL receives newsletter sign-ups.
	SignupRelayURL string

	Storage Storage

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// RateLimitPerMinute throttles public writes per client IP. Defaults to 30.
	RateLimitPerMinute int

	// MigrateOnStart applies pending migrations before serving.
	MigrateOnStart bool
}

// Redis holds the optional cache connection settings.
type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Storage holds the object storage settings used by the CLIs.
type Storage struct {
	URL    string
	Key    string
	Bucket string
}

// envFiles are loaded in order before reading the environment. Variables
// that are already set are never overwritten, so .env.local wins over .env
// and the real environment wins over both.
var envFiles = []string{".env.local", ".env"}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	if err := loadEnvFiles(); err != nil {
		return Config{}, err
	}

	var errs []string
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFile:            os.Getenv("LOG_FILE"),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		AdminJWTSecret:     os.Getenv("ADMIN_JWT_SECRET"),
		GeocoderURL:        getEnv("GEOCODER_URL", geocode.DefaultURL),
		GeocoderCountry:    getEnv("GEOCODER_COUNTRY", "de"),
		SignupRelayURL:     getEnv("SIGNUP_RELAY_URL", signup.DefaultURL),
		Storage:            loadStorage(),
		MaxBodyBytes:       int64(getInt("MAX_BODY_BYTES", 1<<20, &errs)),
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 30, &errs),
		MigrateOnStart:     getBool("MIGRATE_ON_START", false, &errs),
		Redis: Redis{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0, &errs),
		},
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// LoadStorage reads only the object storage settings. STORAGE_URL and
// STORAGE_KEY are required.
func LoadStorage() (Storage, error) {
	if err := loadEnvFiles(); err != nil {
		return Storage{}, err
	}
	s := loadStorage()

	var missing []string
	if s.URL == "" {
		missing = append(missing, "STORAGE_URL")
	}
	if s.Key == "" {
		missing = append(missing, "STORAGE_KEY")
	}
	if len(missing) > 0 {
		return Storage{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	return s, nil
}

func loadStorage() Storage {
	return Storage{
		URL:    strings.TrimRight(os.Getenv("STORAGE_URL"), "/"),
		Key:    os.Getenv("STORAGE_KEY"),
		Bucket: getEnv("STORAGE_BUCKET", "images"),
	}
}

// loadEnvFiles applies envFiles that exist. A missing file is not an error.
func loadEnvFiles() error {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getInt parses key as an integer. A malformed value is recorded in errs
// and fallback is returned.
func getInt(key string, fallback int, errs *[]string) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		*errs = append(*errs, key+" must be a non-negative integer")
		return fallback
	}
	return n
}

// getBool parses key with strconv.ParseBool. A malformed value is recorded
// in errs and fallback is returned.
func getBool(key string, fallback bool, errs *[]string) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, key+" must be a boolean")
		return fallback
	}
	return b
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
