package config

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "storefront"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Storage drivers for the session key-value surface.
const (
	StorageDriverRedis    = "redis"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
)

type Config struct {
	App       AppConfig
	Upstream  UpstreamConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	if _, err := cfg.Session.SealKeyBytes(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points the gateway at the marketplace backend API.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"STOREFRONT_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"STOREFRONT_UPSTREAM_TIMEOUT" default:"10s"`
}

// StorageConfig selects where session carts and profiles are persisted.
type StorageConfig struct {
	Driver      string        `envconfig:"STOREFRONT_STORAGE_DRIVER" default:"redis"`
	SQLitePath  string        `envconfig:"STOREFRONT_STORAGE_SQLITE_PATH" default:"storefront.db"`
	PostgresDSN string        `envconfig:"STOREFRONT_STORAGE_POSTGRES_DSN"`
	AutoMigrate bool          `envconfig:"STOREFRONT_STORAGE_AUTO_MIGRATE" default:"false"`
	TTL         time.Duration `envconfig:"STOREFRONT_STORAGE_TTL" default:"720h"`
}

func (s StorageConfig) validate() error {
	switch s.Driver {
	case StorageDriverRedis, StorageDriverSQLite:
		return nil
	case StorageDriverPostgres:
		if strings.TrimSpace(s.PostgresDSN) == "" {
			return fmt.Errorf("STOREFRONT_STORAGE_POSTGRES_DSN is required for the postgres driver")
		}
		return nil
	default:
		return fmt.Errorf("unknown storage driver %q", s.Driver)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig governs the signed session cookie and the profile record.
type SessionConfig struct {
	CookieName string `envconfig:"STOREFRONT_SESSION_COOKIE" default:"sf_session"`
	Secret     string `envconfig:"STOREFRONT_SESSION_SECRET" required:"true"`
	Issuer     string `envconfig:"STOREFRONT_SESSION_ISSUER" default:"storefront"`
	TTLHours   int    `envconfig:"STOREFRONT_SESSION_TTL_HOURS" default:"720"`
	// SealKey is 64 hex characters (32 bytes) used to seal the stored
	// upstream access token at rest.
	SealKey      string `envconfig:"STOREFRONT_SESSION_SEAL_KEY" required:"true"`
	CookieSecure bool   `envconfig:"STOREFRONT_SESSION_COOKIE_SECURE" default:"true"`
}

func (s SessionConfig) TTL() time.Duration {
	if s.TTLHours <= 0 {
		return 0
	}
	return time.Duration(s.TTLHours) * time.Hour
}

// SealKeyBytes decodes the hex seal key and enforces its length.
func (s SessionConfig) SealKeyBytes() ([32]byte, error) {
	var key [32]byte
	raw, err := hex.DecodeString(strings.TrimSpace(s.SealKey))
	if err != nil {
		return key, fmt.Errorf("decoding session seal key: %w", err)
	}
	if len(raw) != 32 {
		return key, fmt.Errorf("session seal key must be 32 bytes, got %d", len(raw))
	}
	copy(key[:], raw)
	return key, nil
}

type RateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"STOREFRONT_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"STOREFRONT_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"STOREFRONT_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"STOREFRONT_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"STOREFRONT_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"STOREFRONT_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOREFRONT_CORS_ORIGINS" default:"http://localhost:3000"`
}
