package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Cooperative goals live in the relational store and can be switched off
	GroupGoalsEnabled bool

	// Key-value store for per-user state: "sql", "s3" or "memory"
	KVBackend string
	KVPrefix  string

	// Rate limiting for check-in endpoints
	RateLimitCheckins int
	RateLimitWindow   time.Duration

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, DigitalOcean Spaces, etc.)
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3Endpoint  string // Optional: for S3-compatible services (MinIO, DO Spaces, R2, etc.)
	S3Timeout   time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "Yuno"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/yuno.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		GroupGoalsEnabled: envBool("GROUP_GOALS_ENABLED", true),

		// Key-value store
		KVBackend: envString("KV_BACKEND", "sql"),
		KVPrefix:  envString("KV_PREFIX", "yuno"),

		// Rate limiting
		RateLimitCheckins: envInt("RATE_LIMIT_CHECKINS", 30),
		RateLimitWindow:   envDuration("RATE_LIMIT_WINDOW", time.Minute),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage (S3-compatible - only needed when KV_BACKEND=s3)
		S3Region:    envString("S3_REGION", "us-east-1"),
		S3Bucket:    envString("S3_BUCKET", ""),
		S3AccessKey: envString("S3_ACCESS_KEY", ""),
		S3SecretKey: envString("S3_SECRET_KEY", ""),
		S3Endpoint:  envString("S3_ENDPOINT", ""),                // Optional: for non-AWS providers
		S3Timeout:   envDuration("S3_TIMEOUT", 10*time.Second), // Per request
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures the selected backends are fully configured for production deployments.
func validateProduction(cfg *Config) {
	if cfg.KVBackend == "s3" && cfg.S3Bucket == "" {
		slog.Error("production deployment with KV_BACKEND=s3 requires S3_BUCKET",
			"hint", "set KV_BACKEND=sql to keep user state in the database")
		os.Exit(1)
	}
	if cfg.KVBackend == "memory" {
		slog.Warn("KV_BACKEND=memory loses all user state on restart")
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy without credentials or connection strings,
// safe to expose to request handlers
func (c *Config) Sanitized() *Config {
	sanitized := *c
	sanitized.DBConnection = ""
	sanitized.SentryDSN = ""
	sanitized.S3AccessKey = ""
	sanitized.S3SecretKey = ""
	return &sanitized
}
