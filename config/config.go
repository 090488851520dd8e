package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/koywe"
	"github.com/dmitrijs2005/koywe/endpoints"
	"github.com/dmitrijs2005/koywe/logging"
)

type Config struct {
	BaseURL          string
	ClientID         string
	ClientSecret     string
	Username         string
	Password         string
	Timeout          time.Duration
	TaxRate          float64
	LogLevel         string
	AutoAuthenticate bool
}

func (c *Config) LoadDefaults() {
	c.BaseURL = koywe.DefaultBaseURL
	c.Timeout = koywe.DefaultTimeout
	c.TaxRate = endpoints.DefaultTaxRate
	c.LogLevel = "info"
	c.AutoAuthenticate = true
}

// Load builds a Config from defaults, the JSON file named in args, the
// environment and finally the flags in args.
func Load(args []string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, getenv); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig loads from the process arguments and environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], os.Getenv)
}

// Client converts the configuration into client settings.
func (c *Config) Client(log logging.Logger) koywe.Config {
	taxRate := c.TaxRate
	return koywe.Config{
		ClientID:         c.ClientID,
		ClientSecret:     c.ClientSecret,
		Username:         c.Username,
		Password:         c.Password,
		BaseURL:          c.BaseURL,
		Timeout:          c.Timeout,
		TaxRate:          &taxRate,
		Logger:           log,
		AutoAuthenticate: c.AutoAuthenticate,
	}
}
