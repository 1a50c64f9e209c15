package config

type Config interface {
	EnvConfig
	APIConfig
	SessionConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
}

// New returns a configuration backed by environment variables only.
func New() Config {
	return mainConfig{}
}

type mainConfig struct {
	EnvVars
	API
	Session
}
