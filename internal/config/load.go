package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the optional YAML configuration. Environment variables take precedence over it.
type FileConfig struct {
	AppName     string `yaml:"app_name"`
	Env         string `yaml:"env"`
	SessionFile string `yaml:"session_file"`
	API         struct {
		BaseURL       string        `yaml:"base_url"`
		Timeout       time.Duration `yaml:"timeout"`
		LoginStrategy string        `yaml:"login_strategy"`
	} `yaml:"api"`
}

func (f *FileConfig) value(get func(*FileConfig) string, defaultValue string) string {
	if f == nil {
		return defaultValue
	}
	if v := get(f); v != "" {
		return v
	}
	return defaultValue
}

// Load reads the YAML file at path and layers environment variables on top of it.
// An empty path behaves like New.
func Load(path string) (Config, error) {
	if path == "" {
		return New(), nil
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return mainConfig{
		EnvVars: EnvVars{file: &fc},
		API:     API{file: &fc},
		Session: Session{file: &fc},
	}, nil
}
