package catalog

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/studyweave/studyweave-backend/internal/platform/envutil"
)

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

type ConfigErrorCode string

const (
	ConfigErrorMissingURL ConfigErrorCode = "missing_url"
	ConfigErrorInvalidURL ConfigErrorCode = "invalid_url"
)

type ConfigError struct {
	Code  ConfigErrorCode
	Value string
	Cause error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid catalog config"
	}
	switch e.Code {
	case ConfigErrorMissingURL:
		return "CATALOG_URL is required"
	case ConfigErrorInvalidURL:
		return fmt.Sprintf(
			"invalid CATALOG_URL=%q; expected absolute URL like https://catalog.example.org/api",
			e.Value,
		)
	default:
		return "invalid catalog config"
	}
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func ResolveConfigFromEnv() (Config, error) {
	cfg := Config{
		URL:     envutil.Str("CATALOG_URL", ""),
		APIKey:  envutil.Str("CATALOG_API_KEY", ""),
		Timeout: envutil.Duration("CATALOG_TIMEOUT_SECONDS", 10*time.Second),
	}
	if err := ValidateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func ValidateConfig(cfg Config) error {
	if cfg.URL == "" {
		return &ConfigError{Code: ConfigErrorMissingURL}
	}
	parsed, err := url.Parse(cfg.URL)
	if err != nil || strings.TrimSpace(parsed.Scheme) == "" || strings.TrimSpace(parsed.Host) == "" {
		return &ConfigError{Code: ConfigErrorInvalidURL, Value: cfg.URL, Cause: err}
	}
	return nil
}
