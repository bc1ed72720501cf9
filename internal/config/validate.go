package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	rperrors "github.com/jrsteele09/research-platform-client/internal/errors"
)

func validate(c mainConfig) error {
	err := validation.Errors{
		"base_url":   validation.Validate(c.GetBaseURL(), validation.Required, validation.By(httpURL)),
		"timeout":    validateTimeout(c.EnvVars),
		"log_level":  validation.Validate(strings.ToLower(c.GetLogLevel()), validation.In("trace", "debug", "info", "warn", "error", "disabled")),
		"log_format": validation.Validate(strings.ToLower(c.GetLogFormat()), validation.In("console", "json")),
		"token_file": validation.Validate(c.GetTokenFile(), validation.Required),
	}.Filter()
	if err != nil {
		return fmt.Errorf("%w: %w", rperrors.ErrInvalidConfig, err)
	}
	return nil
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %v", rperrors.ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: must use http or https scheme, got %q", rperrors.ErrInvalidBaseURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", rperrors.ErrInvalidBaseURL)
	}
	return nil
}

func validateTimeout(e EnvVars) error {
	d, err := e.timeout()
	if err != nil {
		return errors.New("must be a duration such as 30s")
	}
	if d < 0 {
		return errors.New("must be non-negative")
	}
	return nil
}
