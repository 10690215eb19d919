package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Flash     FlashConfig
	AdminSeed AdminSeedConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN             string
	ApplicationName string
	MaxConns        int32
	MinConns        int32
	RunMigrations   bool
	ConnMaxIdleSec  int32
	ConnMaxLifeSec  int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level       string
	Service     string
	Development bool
}

// AuthConfig defines session and password parameters.
type AuthConfig struct {
	SessionSecret     string
	SessionTTLMinutes int
	BcryptCost        int
	CookieName        string
	CookieSecure      bool
}

// FlashConfig controls how long unread notices are kept.
type FlashConfig struct {
	TTLSeconds int
	CookieName string
}

// AdminSeedConfig describes an administrator account created at startup.
// Seeding is skipped when Email or Password is empty.
type AdminSeedConfig struct {
	Email    string
	Name     string
	Password string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	appName := getEnv("APP_NAME", "complaint-service")
	appEnv := getEnv("APP_ENV", "development")

	cfg := &Config{
		App: AppConfig{
			Name:                  appName,
			Env:                   appEnv,
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:             os.Getenv("POSTGRES_DSN"),
			ApplicationName: appName,
			MaxConns:        int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:        int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:   getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec:  int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec:  int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Service:     appName,
			Development: appEnv == "development",
		},
		Auth: AuthConfig{
			SessionSecret:     getEnv("AUTH_SESSION_SECRET", "dev-secret"),
			SessionTTLMinutes: getEnvAsInt("AUTH_SESSION_TTL_MINUTES", 24*60),
			BcryptCost:        getEnvAsInt("AUTH_BCRYPT_COST", 12),
			CookieName:        getEnv("AUTH_COOKIE_NAME", "complaint_session"),
			CookieSecure:      getEnvAsBool("AUTH_COOKIE_SECURE", false),
		},
		Flash: FlashConfig{
			TTLSeconds: getEnvAsInt("FLASH_TTL_SECONDS", 300),
			CookieName: getEnv("FLASH_COOKIE_NAME", "complaint_client"),
		},
		AdminSeed: AdminSeedConfig{
			Email:    os.Getenv("ADMIN_SEED_EMAIL"),
			Name:     getEnv("ADMIN_SEED_NAME", "Administrator"),
			Password: os.Getenv("ADMIN_SEED_PASSWORD"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// SessionTTL returns how long a session cookie stays valid.
func (a AuthConfig) SessionTTL() time.Duration {
	if a.SessionTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(a.SessionTTLMinutes) * time.Minute
}

// TTL returns how long an unread notice is retained.
func (f FlashConfig) TTL() time.Duration {
	if f.TTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(f.TTLSeconds) * time.Second
}

// Enabled reports whether an administrator should be seeded.
func (a AdminSeedConfig) Enabled() bool {
	return a.Email != "" && a.Password != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
