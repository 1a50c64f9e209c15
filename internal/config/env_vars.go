package config

import (
	"os"
	"time"
)

const (
	appNameVar        = "APP_NAME"
	envVar            = "ENV"
	apiBaseURLVar     = "API_BASE_URL"
	requestTimeoutVar = "REQUEST_TIMEOUT"
	loginStrategyVar  = "LOGIN_STRATEGY"
	sessionFileVar    = "SESSION_FILE"

	// ConfigFileVar names the optional YAML file read by Load.
	ConfigFileVar = "RECYCLEMATE_CONFIG"
)

type EnvVars struct {
	file *FileConfig
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return GetEnv(appNameVar, e.file.value(func(f *FileConfig) string { return f.AppName }, "RecycleMate"))
}

func (e EnvVars) GetEnv() string {
	env := os.Getenv(envVar)
	if env != "" {
		return env
	}
	return e.file.value(func(f *FileConfig) string { return f.Env }, "DEV")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetDuration parses envVar as a time.Duration, falling back to defaultValue when unset or malformed.
func GetDuration(envVar string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
