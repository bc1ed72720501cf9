package config

import (
	"time"
)

type Config interface {
	ClientConfig
	TokenConfig
	LogConfig
	RefreshConfig
	Validate() error
}

type ClientConfig interface {
	GetBaseURL() string
	GetTimeout() time.Duration
	GetTLSVerify() bool
}

type TokenConfig interface {
	GetTokenFile() string
}

type LogConfig interface {
	GetLogLevel() string
	GetLogFormat() string
}

type RefreshConfig interface {
	GetCoalesceRefresh() bool
}

type mainConfig struct {
	EnvVars
}

var _ Config = mainConfig{}

// New returns a Config backed by environment variables only.
func New() Config {
	return mainConfig{}
}

// Load returns a Config backed by environment variables layered over the YAML
// file at path. An empty path falls back to RP_CONFIG, and if that is unset too
// the result is identical to New.
func Load(path string) (Config, error) {
	if path == "" {
		path = GetEnv(configFileVar, "")
	}
	if path == "" {
		return New(), nil
	}
	fc, err := readFileConfig(path)
	if err != nil {
		return nil, err
	}
	return mainConfig{EnvVars{file: fc}}, nil
}

func (c mainConfig) Validate() error {
	return validate(c)
}
