package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/koywe"
)

const (
	EnvTimeout          = "KOYWE_TIMEOUT"
	EnvTaxRate          = "KOYWE_TAX_RATE"
	EnvLogLevel         = "KOYWE_LOG_LEVEL"
	EnvAutoAuthenticate = "KOYWE_AUTO_AUTHENTICATE"
)

// parseEnv overlays cfg with the non-empty KOYWE_* variables.
func parseEnv(cfg *Config, getenv func(string) string) error {
	for name, dst := range map[string]*string{
		koywe.EnvBaseURL:      &cfg.BaseURL,
		koywe.EnvClientID:     &cfg.ClientID,
		koywe.EnvClientSecret: &cfg.ClientSecret,
		koywe.EnvUsername:     &cfg.Username,
		koywe.EnvPassword:     &cfg.Password,
		EnvLogLevel:           &cfg.LogLevel,
	} {
		if v := getenv(name); v != "" {
			*dst = v
		}
	}

	if v := getenv(EnvTimeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := getenv(EnvTaxRate); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTaxRate, err)
		}
		cfg.TaxRate = rate
	}
	if v := getenv(EnvAutoAuthenticate); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAutoAuthenticate, err)
		}
		cfg.AutoAuthenticate = b
	}
	return nil
}

// parseTimeout accepts a duration string or a bare number of seconds.
func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}
