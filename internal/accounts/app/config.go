package app

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config is populated from the environment. TENANTD_JWT_SECRET is the only
// required value; everything else has a workable default for development.
type Config struct {
	JWTSecret string `env:"TENANTD_JWT_SECRET"`
	Issuer    string `env:"TENANTD_ISSUER" envDefault:"tenantd"`

	AccessTokenTTL  time.Duration `env:"TENANTD_ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL time.Duration `env:"TENANTD_REFRESH_TOKEN_TTL" envDefault:"168h"`

	DatabaseFile string `env:"TENANTD_DATABASE_FILE" envDefault:"tenantd.db"`

	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
	Port      int    `env:"PORT" envDefault:"8080"`

	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
}

// MinJWTSecretLength guards against trivially brute-forceable HS256 keys.
const MinJWTSecretLength = 32

var (
	ErrWeakJWTSecret    = errors.New("TENANTD_JWT_SECRET must be at least 32 bytes")
	ErrTokenTTLInverted = errors.New("TENANTD_REFRESH_TOKEN_TTL must exceed TENANTD_ACCESS_TOKEN_TTL")
)

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return Config{}, ErrWeakJWTSecret
	}
	// A refresh token that dies with (or before) its access token would make
	// every session unrefreshable.
	if cfg.RefreshTokenTTL <= cfg.AccessTokenTTL {
		return Config{}, ErrTokenTTLInverted
	}
	return cfg, nil
}
