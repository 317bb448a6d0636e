package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// App
	Env          string // dev / staging / prod
	SeedDemoUser bool

	// HTTP
	HTTPAddr         string
	CORSOrigins      []string
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Auth
	JWTSecret      string
	JWTIssuer      string
	AccessTokenTTL time.Duration
	BcryptCost     int

	// Postgres; empty DBAddr selects the in-memory store (dev only)
	DBAddr    string
	DBDebug   bool
	DBMigrate bool

	// Redis identity cache, optional
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	UserCacheTTL  time.Duration

	// RabbitMQ account events, optional
	RabbitURL      string
	RabbitExchange string
}

func (c *Config) IsDev() bool { return c.Env == "dev" }

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first; variables already set in the process
// environment win. The first malformed value aborts loading.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var e env
	cfg := &Config{
		Env:          e.str("ENV", "dev"),
		SeedDemoUser: e.boolean("SEED_DEMO_USER", false),

		HTTPAddr:         e.str("HTTP_ADDR", ":8000"),
		CORSOrigins:      e.list("CORS_ORIGINS"),
		HTTPReadTimeout:  e.duration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout: e.duration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		HTTPIdleTimeout:  e.duration("HTTP_IDLE_TIMEOUT", time.Minute),

		JWTSecret:      e.required("JWT_SECRET"),
		JWTIssuer:      e.str("JWT_ISSUER", "wellbot"),
		AccessTokenTTL: e.duration("ACCESS_TOKEN_TTL", 24*time.Hour),
		BcryptCost:     e.integer("BCRYPT_COST", 12),

		DBAddr:    os.Getenv("DB_ADDR"),
		DBDebug:   e.boolean("DB_DEBUG", false),
		DBMigrate: e.boolean("DB_MIGRATE", true),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       e.integer("REDIS_DB", 0),
		UserCacheTTL:  e.duration("USER_CACHE_TTL", 10*time.Minute),

		RabbitURL:      os.Getenv("RABBIT_URL"),
		RabbitExchange: e.str("RABBIT_EXCHANGE", "wellbot.events"),
	}
	if e.err != nil {
		return nil, e.err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.AccessTokenTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be positive, got %s", c.AccessTokenTTL)
	}
	if c.DBAddr == "" {
		if !c.IsDev() {
			return errors.New("missing required env var: DB_ADDR")
		}
		return nil
	}
	if !strings.HasPrefix(c.DBAddr, "postgres://") && !strings.HasPrefix(c.DBAddr, "postgresql://") {
		return errors.New("DB_ADDR must be a postgres:// URL")
	}
	return nil
}

// env reads typed variables and keeps the first parse error.
type env struct{ err error }

func (e *env) fail(key, kind, v string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s for %s: %q: %w", kind, key, v, err)
	}
}

func (e *env) str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (e *env) required(key string) string {
	v := os.Getenv(key)
	if v == "" && e.err == nil {
		e.err = fmt.Errorf("missing required env var: %s", key)
	}
	return v
}

func (e *env) list(key string) []string {
	var out []string
	for _, s := range strings.Split(os.Getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, "duration", v, err)
	}
	return d
}

func (e *env) integer(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, "int", v, err)
	}
	return n
}

func (e *env) boolean(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, "bool", v, err)
	}
	return b
}
