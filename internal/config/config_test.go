package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjoshuak/postcollect/internal/config"
	"github.com/mrjoshuak/postcollect/internal/siteconfig"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, 20*time.Second, cfg.Timeout)
	assert.Equal(t, 5, cfg.MaxRedirects)
	assert.True(t, cfg.RemoteSiteConfigs)
	assert.Equal(t, siteconfig.DefaultBaseURL, cfg.SiteConfigBaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Database)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("overlays the file on the defaults", func(t *testing.T) {
		t.Setenv(config.EnvDBPath, "")
		path := writeConfig(t, `
user_agent: "TestBot/1.0"
timeout: 5s
site_config_dir: /etc/postcollect/site-config
remote_site_configs: false
database: /tmp/articles.db
log:
  level: debug
  file: /tmp/postcollect.log
`)
		cfg, err := config.Load(path)
		require.NoError(t, err)

		assert.Equal(t, "TestBot/1.0", cfg.UserAgent)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, 5, cfg.MaxRedirects)
		assert.Equal(t, "/etc/postcollect/site-config", cfg.SiteConfigDir)
		assert.False(t, cfg.RemoteSiteConfigs)
		assert.Equal(t, "/tmp/articles.db", cfg.Database)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "/tmp/postcollect.log", cfg.LoggingOptions().File)
		assert.True(t, cfg.Log.Console)
	})

	t.Run("database path from environment wins", func(t *testing.T) {
		t.Setenv(config.EnvDBPath, "/env/articles.db")
		cfg, err := config.Load(writeConfig(t, "database: /file/articles.db\n"))
		require.NoError(t, err)
		assert.Equal(t, "/env/articles.db", cfg.Database)
	})

	t.Run("config path from environment", func(t *testing.T) {
		t.Setenv(config.EnvDBPath, "")
		t.Setenv(config.EnvConfigPath, writeConfig(t, "max_redirects: 2\n"))
		cfg, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.MaxRedirects)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := config.Load(writeConfig(t, "timeout: [\n"))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero timeout", func(c *config.Config) { c.Timeout = 0 }},
		{"negative redirects", func(c *config.Config) { c.MaxRedirects = -1 }},
		{"negative rate", func(c *config.Config) { c.RateLimitRPS = -2 }},
		{"bad base url", func(c *config.Config) { c.SiteConfigBaseURL = "ftp://configs" }},
		{"no database", func(c *config.Config) { c.Database = "" }},
		{"bad log level", func(c *config.Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("base url ignored when remote disabled", func(t *testing.T) {
		t.Parallel()
		cfg := config.Default()
		cfg.RemoteSiteConfigs = false
		cfg.SiteConfigBaseURL = ""
		assert.NoError(t, cfg.Validate())
	})
}
