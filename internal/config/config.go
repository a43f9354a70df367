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
	Broker    BrokerConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	I18n      I18nConfig
}

// AppConfig controls service level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Version               string
	HealthHost            string
	HealthPort            string
	RequestTimeoutSeconds int
}

// BrokerConfig holds message broker connection values.
type BrokerConfig struct {
	Host     string
	Port     string
	User     string
	Password string
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines token issuance parameters.
type AuthConfig struct {
	JWTSecret     string
	TokenTTLHours int
	BcryptCost    int
}

// RateLimitConfig defines admission control parameters.
type RateLimitConfig struct {
	WindowMinutes int
	MaxMessages   int
	Backend       string
}

// I18nConfig configures localized message lookup.
type I18nConfig struct {
	FallbackLocale string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "auth-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Version:               getEnv("APP_VERSION", "dev"),
			HealthHost:            getEnv("HEALTH_HOST", "0.0.0.0"),
			HealthPort:            getEnv("HEALTH_PORT", "8081"),
			RequestTimeoutSeconds: getEnvAsInt("MESSAGE_TIMEOUT_SECONDS", 30),
		},
		Broker: BrokerConfig{
			Host:     getEnv("BROKER_HOST", "127.0.0.1"),
			Port:     getEnv("BROKER_PORT", "4222"),
			User:     os.Getenv("BROKER_USER"),
			Password: os.Getenv("BROKER_PASSWORD"),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("AUTH_JWT_SECRET", "dev-secret"),
			TokenTTLHours: getEnvAsInt("AUTH_TOKEN_TTL_HOURS", 24),
			BcryptCost:    getEnvAsInt("AUTH_BCRYPT_COST", 10),
		},
		RateLimit: RateLimitConfig{
			WindowMinutes: getEnvAsInt("RATE_LIMIT_WINDOW_MINUTES", 15),
			MaxMessages:   getEnvAsInt("RATE_LIMIT_MAX_MESSAGES", 1000),
			Backend:       getEnv("RATE_LIMIT_BACKEND", "memory"),
		},
		I18n: I18nConfig{
			FallbackLocale: getEnv("I18N_FALLBACK_LOCALE", "en"),
		},
	}

	return cfg, nil
}

// HealthAddr returns the bind address for the health probe server.
func (a AppConfig) HealthAddr() string {
	return fmt.Sprintf("%s:%s", a.HealthHost, a.HealthPort)
}

// RequestTimeout returns the configured per-message timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// URL builds the broker connection URL.
func (b BrokerConfig) URL() string {
	if b.User != "" {
		return fmt.Sprintf("nats://%s:%s@%s:%s", b.User, b.Password, b.Host, b.Port)
	}
	return fmt.Sprintf("nats://%s:%s", b.Host, b.Port)
}

// TokenTTL returns the configured token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	if a.TokenTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(a.TokenTTLHours) * time.Hour
}

// Window returns the configured admission window duration.
func (r RateLimitConfig) Window() time.Duration {
	if r.WindowMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(r.WindowMinutes) * time.Minute
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
