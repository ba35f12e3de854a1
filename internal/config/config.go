package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// StorageBackend selects the KV implementation behind the persistence gateway.
type StorageBackend string

const (
	BackendMemory   StorageBackend = "memory"
	BackendRedis    StorageBackend = "redis"
	BackendPostgres StorageBackend = "postgres"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Session  SessionConfig
	Insight  InsightConfig
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

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret         string
	SessionTTLMinutes int
	BcryptCost        int
}

// StorageConfig selects the gateway backend.
type StorageConfig struct {
	Backend StorageBackend
}

// SessionConfig tunes the simulated transition delays of the application
// shell. Zero delays apply transitions synchronously.
type SessionConfig struct {
	BootDelayMillis         int
	NavigateDelayMillis     int
	TenantSwitchDelayMillis int
	ReturnDelayMillis       int
}

// InsightConfig points at the AI drafting backend.
type InsightConfig struct {
	Endpoint       string
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backend := StorageBackend(getEnv("STORAGE_BACKEND", string(BackendMemory)))
	switch backend {
	case BackendMemory, BackendRedis, BackendPostgres:
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND: %q", backend)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ecclesiapro-admin-core"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
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
			JWTSecret:         getEnv("AUTH_JWT_SECRET", "dev-secret"),
			SessionTTLMinutes: getEnvAsInt("AUTH_SESSION_TTL_MINUTES", 480),
			BcryptCost:        getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Storage: StorageConfig{
			Backend: backend,
		},
		Session: SessionConfig{
			BootDelayMillis:         getEnvAsInt("SESSION_BOOT_DELAY_MS", 2500),
			NavigateDelayMillis:     getEnvAsInt("SESSION_NAVIGATE_DELAY_MS", 500),
			TenantSwitchDelayMillis: getEnvAsInt("SESSION_TENANT_SWITCH_DELAY_MS", 800),
			ReturnDelayMillis:       getEnvAsInt("SESSION_RETURN_DELAY_MS", 600),
		},
		Insight: InsightConfig{
			Endpoint:       getEnv("INSIGHT_API_ENDPOINT", "https://generativelanguage.googleapis.com/v1beta"),
			APIKey:         os.Getenv("INSIGHT_API_KEY"),
			Model:          getEnv("INSIGHT_MODEL", "gemini-2.5-flash"),
			TimeoutSeconds: getEnvAsInt("INSIGHT_TIMEOUT_SECONDS", 15),
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

// BootDelay returns the simulated boot delay.
func (s SessionConfig) BootDelay() time.Duration {
	return time.Duration(s.BootDelayMillis) * time.Millisecond
}

// NavigateDelay returns the simulated navigation delay.
func (s SessionConfig) NavigateDelay() time.Duration {
	return time.Duration(s.NavigateDelayMillis) * time.Millisecond
}

// TenantSwitchDelay returns the simulated tenant impersonation delay.
func (s SessionConfig) TenantSwitchDelay() time.Duration {
	return time.Duration(s.TenantSwitchDelayMillis) * time.Millisecond
}

// ReturnDelay returns the simulated return-to-admin delay.
func (s SessionConfig) ReturnDelay() time.Duration {
	return time.Duration(s.ReturnDelayMillis) * time.Millisecond
}

// Timeout returns the insight request timeout.
func (i InsightConfig) Timeout() time.Duration {
	if i.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(i.TimeoutSeconds) * time.Second
}

// SessionTTL returns how long issued session tokens stay valid.
func (a AuthConfig) SessionTTL() time.Duration {
	if a.SessionTTLMinutes <= 0 {
		return 8 * time.Hour
	}
	return time.Duration(a.SessionTTLMinutes) * time.Minute
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
