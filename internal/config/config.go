// Package config loads the process-wide configuration once at startup.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	// EnvKeyJWTSecret is the environment variable holding the token signing secret.
	EnvKeyJWTSecret = "JWT_SECRET"

	defaultPort          = "8080"
	defaultTokenTTL      = 3600 * time.Second
	defaultProductTTL    = 5 * time.Minute
	defaultDBDriver      = "postgres"
	defaultSQLitePath    = "./shopping.db"
	defaultRedisPort     = "6379"
	defaultCORSAllowList = "*"
)

// Config is immutable after Load returns and is passed by value or pointer
// into the components that need it.
type Config struct {
	Port        string
	LogLevel    slog.Level
	CORSOrigins []string

	JWTSecret string
	TokenTTL  time.Duration

	BcryptCost  int
	HashWorkers int

	DB    DBConfig
	Redis RedisConfig

	ProductCacheTTL time.Duration
}

// DBConfig describes how to reach the relational store.
type DBConfig struct {
	Driver        string
	Host          string
	Port          string
	User          string
	Password      string
	Name          string
	SSLMode       string
	SQLitePath    string
	RunMigrations bool
}

// RedisConfig describes the optional cache. An empty Host disables it.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Enabled reports whether a Redis host was configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Addr returns host:port for the redis client.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// Load reads .env (if present) and the environment.
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Debug(".env not found; using process environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:        get("PORT", defaultPort),
		LogLevel:    parseLevel(get("LOG_LEVEL", "info")),
		CORSOrigins: parseCSV(get("CORS_ALLOWED_ORIGINS", defaultCORSAllowList)),
		JWTSecret:   strings.TrimSpace(getenv(EnvKeyJWTSecret)),
		TokenTTL:    parseSeconds(getenv("JWT_TTL_SECONDS"), defaultTokenTTL),
		BcryptCost:  parseInt(getenv("BCRYPT_COST"), bcrypt.DefaultCost),
		HashWorkers: parseInt(getenv("HASH_WORKERS"), runtime.NumCPU()),
		DB: DBConfig{
			Driver:        strings.ToLower(get("DB_DRIVER", defaultDBDriver)),
			Host:          get("DB_HOST", "localhost"),
			Port:          get("DB_PORT", "5432"),
			User:          getenv("DB_USER"),
			Password:      getenv("DB_PASSWORD"),
			Name:          getenv("DB_NAME"),
			SSLMode:       get("DB_SSLMODE", "disable"),
			SQLitePath:    get("SQLITE_PATH", defaultSQLitePath),
			RunMigrations: getenv("RUN_MIGRATIONS") == "true",
		},
		Redis: RedisConfig{
			Host:     strings.TrimSpace(getenv("REDIS_HOST")),
			Port:     get("REDIS_PORT", defaultRedisPort),
			Password: getenv("REDIS_PASSWORD"),
		},
		ProductCacheTTL: parseSeconds(getenv("PRODUCT_CACHE_TTL_SECONDS"), defaultProductTTL),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("%s is required", EnvKeyJWTSecret)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	switch cfg.DB.Driver {
	case "postgres", "sqlite":
	default:
		return Config{}, errors.New("DB_DRIVER must be postgres or sqlite")
	}

	return cfg, nil
}

// HTTPAddress returns the address the HTTP server binds to.
func (c Config) HTTPAddress() string {
	return ":" + c.Port
}

func parseInt(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func parseSeconds(raw string, def time.Duration) time.Duration {
	n := parseInt(raw, 0)
	if n == 0 {
		return def
	}
	return time.Duration(n) * time.Second
}

func parseLevel(raw string) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseCSV(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{defaultCORSAllowList}
	}
	return out
}
