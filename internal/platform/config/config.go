package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	AuthEnabled bool
	JWTSecret   string

	// RateLimit uses the ulule limiter format, e.g. "100-M". Empty disables rate limiting.
	RateLimit          string
	CORSAllowedOrigins []string

	// RedisURL enables the settings cache when set.
	RedisURL         string
	SettingsCacheTTL time.Duration

	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("AUTH_ENABLED", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("SETTINGS_CACHE_TTL", "5m")
	v.SetDefault("METRICS_ENABLED", true)
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		AuthEnabled:    v.GetBool("AUTH_ENABLED"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		RateLimit:      strings.TrimSpace(v.GetString("RATE_LIMIT")),
		RedisURL:       v.GetString("REDIS_URL"),
		MetricsEnabled: v.GetBool("METRICS_ENABLED"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set.")
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT environment variable not set, using default", slog.String("port", cfg.Port))
	}

	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		slog.Warn("JWT_SECRET environment variable not set. Using default insecure key.")
	}

	ttlStr := v.GetString("SETTINGS_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl < 0 {
		ttl = 5 * time.Minute
		slog.Warn("Invalid value for SETTINGS_CACHE_TTL, using default",
			slog.String("value", ttlStr), slog.String("default", ttl.String()))
	}
	cfg.SettingsCacheTTL = ttl

	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
