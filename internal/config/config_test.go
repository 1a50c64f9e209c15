package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/recyclemate/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	for _, v := range []string{"APP_NAME", "ENV", "API_BASE_URL", "REQUEST_TIMEOUT", "LOGIN_STRATEGY"} {
		t.Setenv(v, "")
	}

	c := config.New()
	require.Equal(t, "RecycleMate", c.GetAppName())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "http://localhost:5000/api", c.GetAPIBaseURL())
	require.Equal(t, 30*time.Second, c.GetRequestTimeout())
	require.Equal(t, config.LoginStrategySequential, c.GetLoginStrategy())
	require.NotEmpty(t, c.GetSessionFile())
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.recyclemate.test")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("LOGIN_STRATEGY", "unified")
	t.Setenv("SESSION_FILE", "/tmp/session.json")

	c := config.New()
	require.Equal(t, "https://api.recyclemate.test", c.GetAPIBaseURL())
	require.Equal(t, 5*time.Second, c.GetRequestTimeout())
	require.Equal(t, config.LoginStrategyUnified, c.GetLoginStrategy())
	require.Equal(t, "/tmp/session.json", c.GetSessionFile())
}

func TestNew_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")
	t.Setenv("LOGIN_STRATEGY", "guess")

	c := config.New()
	require.Equal(t, 30*time.Second, c.GetRequestTimeout())
	require.Equal(t, config.LoginStrategySequential, c.GetLoginStrategy())
}

func TestLoad(t *testing.T) {
	for _, v := range []string{"APP_NAME", "ENV", "API_BASE_URL", "REQUEST_TIMEOUT", "LOGIN_STRATEGY", "SESSION_FILE"} {
		t.Setenv(v, "")
	}

	path := filepath.Join(t.TempDir(), "recyclemate.yaml")
	yml := `
app_name: RecycleMate Staging
env: PROD
session_file: /var/lib/recyclemate/session.json
api:
  base_url: https://staging.recyclemate.test/api
  timeout: 12s
  login_strategy: unified
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	t.Run("file values", func(t *testing.T) {
		c, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, "RecycleMate Staging", c.GetAppName())
		require.Equal(t, "PROD", c.GetEnv())
		require.Equal(t, "https://staging.recyclemate.test/api", c.GetAPIBaseURL())
		require.Equal(t, 12*time.Second, c.GetRequestTimeout())
		require.Equal(t, config.LoginStrategyUnified, c.GetLoginStrategy())
		require.Equal(t, "/var/lib/recyclemate/session.json", c.GetSessionFile())
	})

	t.Run("env wins over file", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://override.test")
		c, err := config.Load(path)
		require.NoError(t, err)
		require.Equal(t, "http://override.test", c.GetAPIBaseURL())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("empty path", func(t *testing.T) {
		c, err := config.Load("")
		require.NoError(t, err)
		require.Equal(t, "RecycleMate", c.GetAppName())
	})
}
