package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"

	"github.com/stayware/hotel-console/internal/core/domain"
)

type Config struct {
	Port          string `env:"PORT,           default=8080"`
	Env           string `env:"ENV,            default=development"`
	LogLevel      string `env:"LOG_LEVEL,      default=info"`
	SessionSecret string `env:"SESSION_SECRET, default=dev-session-secret"`

	// ConsoleID names this console instance; it keys the persisted
	// session payload so that two consoles never share a session.
	ConsoleID string `env:"CONSOLE_ID, default=default"`

	// TenantPlans maps tenant ids to plan tiers, e.g.
	// "grand-hotel:premium,seaside-inn:basic". Deploy-time data; tenants
	// not listed fall back to the basic tier.
	TenantPlans map[string]string `env:"TENANT_PLANS"`

	IdentityStore IdentityStoreConfig
	Redis         RedisConfig
}

// IdentityStoreConfig locates the external Identity Store. URI and
// AccessKey are the two values that must be present at startup.
type IdentityStoreConfig struct {
	URI       string `env:"IDENTITY_STORE_URI"`
	AccessKey string `env:"IDENTITY_STORE_ACCESS_KEY"`
	Database  string `env:"IDENTITY_STORE_DB, default=hotel_console"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces the startup-fatal requirements. A missing Identity
// Store endpoint or access key is a configuration error, reported
// distinctly from any runtime authentication failure.
func (c *Config) Validate() error {
	if c.IdentityStore.URI == "" {
		return fmt.Errorf("%w: IDENTITY_STORE_URI is required", domain.ErrMissingCredentials)
	}
	if c.IdentityStore.AccessKey == "" {
		return fmt.Errorf("%w: IDENTITY_STORE_ACCESS_KEY is required", domain.ErrMissingCredentials)
	}
	return nil
}
