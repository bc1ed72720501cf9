package config

import (
	"os"
	"strconv"
	"time"
)

const (
	configFileVar      = "RP_CONFIG"
	baseURLVar         = "RP_API_BASE_URL"
	timeoutVar         = "RP_TIMEOUT"
	tlsVerifyVar       = "RP_TLS_VERIFY"
	tokenFileVar       = "RP_TOKEN_FILE"
	logLevelVar        = "RP_LOG_LEVEL"
	logFormatVar       = "RP_LOG_FORMAT"
	coalesceRefreshVar = "RP_COALESCE_REFRESH"

	DefaultBaseURL = "http://localhost:8000/api"
	DefaultTimeout = 30 * time.Second
)

// EnvVars resolves every setting from the environment first, then the optional
// YAML file, then the built-in default.
type EnvVars struct {
	file *fileConfig
}

var (
	_ ClientConfig  = EnvVars{}
	_ TokenConfig   = EnvVars{}
	_ LogConfig     = EnvVars{}
	_ RefreshConfig = EnvVars{}
)

func (e EnvVars) GetBaseURL() string {
	return e.lookup(baseURLVar, e.fileValue(func(f *fileConfig) string { return f.BaseURL }), DefaultBaseURL)
}

// GetTimeout returns the HTTP client timeout. Zero disables the timeout; an
// unparsable value falls back to DefaultTimeout and is reported by Validate.
func (e EnvVars) GetTimeout() time.Duration {
	d, err := e.timeout()
	if err != nil {
		return DefaultTimeout
	}
	return d
}

func (e EnvVars) timeout() (time.Duration, error) {
	raw := e.lookup(timeoutVar, e.fileValue(func(f *fileConfig) string { return f.Timeout }), "")
	if raw == "" {
		return DefaultTimeout, nil
	}
	return time.ParseDuration(raw)
}

func (e EnvVars) GetTLSVerify() bool {
	raw := e.lookup(tlsVerifyVar, e.fileValue(func(f *fileConfig) string { return boolString(f.TLSVerify) }), "true")
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return true
	}
	return v
}

func (e EnvVars) GetTokenFile() string {
	return e.lookup(tokenFileVar, e.fileValue(func(f *fileConfig) string { return f.TokenFile }), defaultTokenFile())
}

func (e EnvVars) GetLogLevel() string {
	return e.lookup(logLevelVar, e.fileValue(func(f *fileConfig) string { return f.LogLevel }), "info")
}

func (e EnvVars) GetLogFormat() string {
	return e.lookup(logFormatVar, e.fileValue(func(f *fileConfig) string { return f.LogFormat }), "console")
}

func (e EnvVars) GetCoalesceRefresh() bool {
	raw := e.lookup(coalesceRefreshVar, e.fileValue(func(f *fileConfig) string { return boolString(f.CoalesceRefresh) }), "false")
	v, _ := strconv.ParseBool(raw)
	return v
}

func (e EnvVars) lookup(envVar, fileValue, defaultValue string) string {
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

func (e EnvVars) fileValue(get func(*fileConfig) string) string {
	if e.file == nil {
		return ""
	}
	return get(e.file)
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func boolString(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}
