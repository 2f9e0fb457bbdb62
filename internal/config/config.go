package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/cvforge/pkg/db"
	"github.com/dmitrymomot/cvforge/pkg/logger"
	"github.com/dmitrymomot/cvforge/pkg/secrets"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the process configuration read from the environment.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	BaseURL         string        `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	SuccessURL      string        `env:"LOGIN_SUCCESS_URL" envDefault:"/"`
	FailureURL      string        `env:"LOGIN_FAILURE_URL" envDefault:"/login"`
	SessionTTL      time.Duration `env:"AUTH_SESSION_TTL" envDefault:"10m"`
	HTTPTimeout     time.Duration `env:"HTTP_CLIENT_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	SecretCacheTTL  time.Duration `env:"SECRET_CACHE_TTL" envDefault:"5m"`
	ProvidersFile   string        `env:"OAUTH_PROVIDERS_FILE"`

	// RedisURL selects the Redis session store. Empty keeps sessions in memory.
	RedisURL string `env:"REDIS_URL"`

	Database db.Config
	Log      logger.Config
	Secrets  SecretsConfig
}

// SecretsConfig selects where provider client credentials come from.
type SecretsConfig struct {
	Backend   string `env:"SECRETS_BACKEND" envDefault:"env"`
	EnvPrefix string `env:"SECRETS_ENV_PREFIX" envDefault:"SECRET_"`
	Region    string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKey string `env:"AWS_ACCESS_KEY_ID"`
	SecretKey string `env:"AWS_SECRET_ACCESS_KEY"`
	Endpoint  string `env:"AWS_SECRETS_ENDPOINT"`
}

// Store converts the settings for secrets.New.
func (c SecretsConfig) Store() secrets.Config {
	return secrets.Config{
		Backend:   c.Backend,
		EnvPrefix: c.EnvPrefix,
		AWS: secrets.AWSConfig{
			Region:    c.Region,
			AccessKey: c.AccessKey,
			SecretKey: c.SecretKey,
			Endpoint:  c.Endpoint,
		},
	}
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	return load(env.Options{})
}

func load(opts env.Options) (Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](opts)
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the env tags cannot express.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.Join(ErrInvalidConfig, fmt.Errorf("APP_BASE_URL %q must be an absolute URL", c.BaseURL))
	}
	if c.SessionTTL <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("AUTH_SESSION_TTL must be positive"))
	}
	if c.HTTPTimeout <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("HTTP_CLIENT_TIMEOUT must be positive"))
	}
	return nil
}
