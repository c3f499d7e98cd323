package config

import (
	"errors"
	"testing"

	"github.com/stayware/hotel-console/internal/core/domain"
)

func validConfig() *Config {
	return &Config{
		Port:          "8080",
		Env:           "test",
		LogLevel:      "info",
		SessionSecret: "secret",
		ConsoleID:     "default",
		IdentityStore: IdentityStoreConfig{
			URI:       "mongodb://localhost:27017",
			AccessKey: "access-key",
			Database:  "hotel_console",
		},
	}
}

func TestValidate_Complete(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("complete config rejected: %v", err)
	}
}

func TestValidate_MissingURI(t *testing.T) {
	cfg := validConfig()
	cfg.IdentityStore.URI = ""
	err := cfg.Validate()
	if !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestValidate_MissingAccessKey(t *testing.T) {
	cfg := validConfig()
	cfg.IdentityStore.AccessKey = ""
	err := cfg.Validate()
	if !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}
