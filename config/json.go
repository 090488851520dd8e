package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/koywe/internal/flagx"
	"github.com/dmitrijs2005/koywe/internal/timex"
)

// JsonConfig mirrors the config file. Pointer fields distinguish an absent
// key from a zero value.
type JsonConfig struct {
	BaseURL          *string         `json:"base_url"`
	ClientID         *string         `json:"client_id"`
	ClientSecret     *string         `json:"client_secret"`
	Username         *string         `json:"username"`
	Password         *string         `json:"password"`
	Timeout          *timex.Duration `json:"timeout"`
	TaxRate          *float64        `json:"tax_rate"`
	LogLevel         *string         `json:"log_level"`
	AutoAuthenticate *bool           `json:"auto_authenticate"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setIf(&cfg.BaseURL, jc.BaseURL)
	setIf(&cfg.ClientID, jc.ClientID)
	setIf(&cfg.ClientSecret, jc.ClientSecret)
	setIf(&cfg.Username, jc.Username)
	setIf(&cfg.Password, jc.Password)
	setIf(&cfg.TaxRate, jc.TaxRate)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.AutoAuthenticate, jc.AutoAuthenticate)
	if jc.Timeout != nil {
		cfg.Timeout = jc.Timeout.Duration
	}
	return nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
