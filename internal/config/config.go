package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	RedisAddress     string
	RedisPassword    string
	RedisDB          int
	OrderCodeService string
	JWTSecret        string
	TokenTTL         time.Duration
	TimeZone         string
	Location         *time.Location
	FeedPollInterval time.Duration
	ShutdownTimeout  time.Duration
	SaveTimeout      time.Duration
	CORSOrigins      []string
	LogLevel         string
	AutoMigrate      bool
	SeedFile         string
}

const (
	defaultRunAddress       = ":8080"
	defaultJWTSecret        = "change-me-in-production"
	defaultTokenTTL         = 12 * time.Hour
	defaultTimeZone         = "Africa/Abidjan"
	defaultFeedPollInterval = 30 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultSaveTimeout      = 10 * time.Second
	defaultLogLevel         = "info"
	defaultSeedFile         = "seed/catalog.yaml"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		RedisAddress:     getString(lookup, "REDIS_ADDRESS", ""),
		RedisPassword:    getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:          getInt(lookup, "REDIS_DB", 0),
		OrderCodeService: getString(lookup, "ORDER_CODE_SERVICE_URL", ""),
		JWTSecret:        getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:         getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		TimeZone:         getString(lookup, "TIME_ZONE", defaultTimeZone),
		FeedPollInterval: getDuration(lookup, "FEED_POLL_INTERVAL", defaultFeedPollInterval),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		SaveTimeout:      getDuration(lookup, "SAVE_TIMEOUT", defaultSaveTimeout),
		CORSOrigins:      splitList(getString(lookup, "CORS_ORIGINS", "")),
		LogLevel:         getString(lookup, "LOG_LEVEL", defaultLogLevel),
		AutoMigrate:      getBool(lookup, "AUTO_MIGRATE", false),
		SeedFile:         getString(lookup, "SEED_FILE", defaultSeedFile),
	}

	fs := flag.NewFlagSet("restomart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.FeedPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		corsOrigins        = strings.Join(cfg.CORSOrigins, ",")
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for the live feed and order codes")
	fs.StringVar(&cfg.OrderCodeService, "code-service", cfg.OrderCodeService, "Base URL of a remote order code service")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.TimeZone, "tz", cfg.TimeZone, "Time zone used to bound the business day")
	fs.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between day feed refreshes")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&corsOrigins, "cors", corsOrigins, "Comma separated list of allowed origins")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.BoolVar(&cfg.AutoMigrate, "migrate", cfg.AutoMigrate, "Apply database migrations on start")
	fs.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "YAML file with catalog items and accounts for cmd/seed")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.FeedPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	cfg.CORSOrigins = splitList(corsOrigins)

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	if cfg.Location, err = time.LoadLocation(cfg.TimeZone); err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", cfg.TimeZone, err)
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.FeedPollInterval <= 0 {
		cfg.FeedPollInterval = defaultFeedPollInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.SaveTimeout <= 0 {
		cfg.SaveTimeout = defaultSaveTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
