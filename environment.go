package koywe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Environment variables read by FromEnvironment.
const (
	EnvClientID     = "KOYWE_CLIENT_ID"
	EnvClientSecret = "KOYWE_CLIENT_SECRET"
	EnvUsername     = "KOYWE_USERNAME"
	EnvPassword     = "KOYWE_PASSWORD"
	EnvBaseURL      = "KOYWE_BASE_URL"
)

// ErrMissingEnvironment is returned by FromEnvironment when a required
// variable is unset or empty.
var ErrMissingEnvironment = errors.New("missing required environment variables")

// FromEnvironment builds a Client from the KOYWE_* variables. KOYWE_BASE_URL
// is optional.
func FromEnvironment(ctx context.Context, autoAuthenticate bool) (*Client, error) {
	cfg, err := configFromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}
	cfg.AutoAuthenticate = autoAuthenticate
	return New(ctx, cfg)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		ClientID:     getenv(EnvClientID),
		ClientSecret: getenv(EnvClientSecret),
		Username:     getenv(EnvUsername),
		Password:     getenv(EnvPassword),
		BaseURL:      getenv(EnvBaseURL),
	}

	var missing []string
	for _, v := range []struct{ name, value string }{
		{EnvClientID, cfg.ClientID},
		{EnvClientSecret, cfg.ClientSecret},
		{EnvUsername, cfg.Username},
		{EnvPassword, cfg.Password},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingEnvironment, strings.Join(missing, ", "))
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg, nil
}
