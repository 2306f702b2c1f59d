package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Prefix is prepended to every variable name, e.g. SCOUT_API_BASE_URL.
const Prefix = "SCOUT_"

const (
	PolicyDowngrade    = "downgrade"
	PolicyRequireLogin = "require-login"

	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API         APIConfig
	Session     SessionConfig
	Credentials CredentialConfig
	Redis       RedisConfig
	Metrics     MetricsConfig
	DevServer   DevServerConfig
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://127.0.0.1:8080"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=10s"`
}

type SessionConfig struct {
	TTL           time.Duration `env:"SESSION_TTL,            default=24h"`
	CheckInterval time.Duration `env:"SESSION_CHECK_INTERVAL, default=5m"`
	ExpiryPolicy  string        `env:"SESSION_EXPIRY_POLICY,  default=downgrade"`
}

type CredentialConfig struct {
	Store string `env:"CREDENTIAL_STORE, default=file"`
	File  string `env:"CREDENTIAL_FILE"`
}

type RedisConfig struct {
	Addr        string        `env:"REDIS_ADDR,         default=localhost:6379"`
	Username    string        `env:"REDIS_USERNAME"`
	Password    string        `env:"REDIS_PASSWORD"`
	DB          int           `env:"REDIS_DB,           default=0"`
	DialTimeout time.Duration `env:"REDIS_DIAL_TIMEOUT, default=3s"`
	KeyPrefix   string        `env:"REDIS_KEY_PREFIX,   default=scout"`
}

type MetricsConfig struct {
	Addr string `env:"METRICS_ADDR"`
}

type DevServerConfig struct {
	Port             string `env:"DEVSERVER_PORT,               default=8080"`
	JWTSecret        string `env:"DEVSERVER_JWT_SECRET,         default=dev-secret"`
	PublicURL        string `env:"DEVSERVER_PUBLIC_URL"`
	TelegramBotToken string `env:"DEVSERVER_TELEGRAM_BOT_TOKEN"`
	MaxImageBytes    int64  `env:"DEVSERVER_MAX_IMAGE_BYTES,    default=5242880"`
}

// Load reads configuration from the environment, preloading a .env file in the
// working directory when one exists.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through the given lookuper. Tests pass an
// envconfig.MapLookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(Prefix, l),
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.ExpiryPolicy {
	case PolicyDowngrade, PolicyRequireLogin:
	default:
		return fmt.Errorf("unknown session expiry policy %q", c.Session.ExpiryPolicy)
	}
	switch c.Credentials.Store {
	case StoreFile, StoreRedis, StoreMemory:
	default:
		return fmt.Errorf("unknown credential store %q", c.Credentials.Store)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive")
	}
	if c.Session.CheckInterval <= 0 {
		return fmt.Errorf("session check interval must be positive")
	}
	return nil
}

// IsDevelopment reports whether human-friendly logs should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
