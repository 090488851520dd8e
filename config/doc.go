// Package config loads runtime configuration for the koywe command.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. KOYWE_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-u string   API base URL
//	-t int      request timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Every key is optional; absent keys keep the value from the previous layer.
// The timeout is a duration string or integer nanoseconds:
//
//	{
//	  "base_url": "https://api-billing.koywe.com/V1",
//	  "client_id": "...",
//	  "client_secret": "...",
//	  "username": "...",
//	  "password": "...",
//	  "timeout": "30s",
//	  "tax_rate": 0.19,
//	  "log_level": "info",
//	  "auto_authenticate": true
//	}
//
// # Environment
//
// KOYWE_BASE_URL, KOYWE_CLIENT_ID, KOYWE_CLIENT_SECRET, KOYWE_USERNAME,
// KOYWE_PASSWORD, KOYWE_TIMEOUT (duration string, or seconds),
// KOYWE_TAX_RATE, KOYWE_LOG_LEVEL and KOYWE_AUTO_AUTHENTICATE.
package config
