package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML configuration file.
//
// Example:
//
//	base_url: https://research.example.org/api
//	timeout: 15s
//	tls_verify: true
//	token_file: ~/.rpctl/tokens.json
//	log_level: debug
//	coalesce_refresh: true
type fileConfig struct {
	BaseURL         string `yaml:"base_url"`
	Timeout         string `yaml:"timeout"`
	TLSVerify       *bool  `yaml:"tls_verify"`
	TokenFile       string `yaml:"token_file"`
	LogLevel        string `yaml:"log_level"`
	LogFormat       string `yaml:"log_format"`
	CoalesceRefresh *bool  `yaml:"coalesce_refresh"`
}

func readFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	fc.TokenFile = expandHome(fc.TokenFile)
	return &fc, nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".rpctl-tokens.json"
	}
	return filepath.Join(home, ".rpctl", "tokens.json")
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
