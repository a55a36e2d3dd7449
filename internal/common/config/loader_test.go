// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func writeTestConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// ==========================
// LoadFromFile Tests
// ==========================

func TestLoadFromFile(t *testing.T) {
	path := writeTestConfig(t, `
app:
  name: mortgage-dashboard
  environment: production

server:
  address: ":9090"
  template_glob: "web/templates/*.tmpl"

backend:
  base_url: "http://api.internal:5000"
  timeout: 20000

session:
  redis:
    address: "redis.internal:6379"
  cookie_name: my_session
  ttl_minutes: 60

pages:
  applications:
    enabled: true
    timeout: 5000
  rate-sheet:
    enabled: false
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "mortgage-dashboard", cfg.App.Name)
	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "http://api.internal:5000", cfg.Backend.BaseURL)
	assert.Equal(t, 20000, cfg.Backend.Timeout)
	assert.Equal(t, "redis.internal:6379", cfg.Session.Redis.Address)
	assert.Equal(t, "my_session", cfg.Session.CookieName)
	assert.Equal(t, 60, cfg.Session.TTLMinutes)
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	path := writeTestConfig(t, `
backend:
  base_url: "http://127.0.0.1:5000"

session:
  redis:
    address: "localhost:6379"
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 15000, cfg.Server.ReadTimeout)
	assert.Equal(t, 30000, cfg.Server.WriteTimeout)
	assert.Equal(t, "web/templates/*.tmpl", cfg.Server.TemplateGlob)
	assert.Equal(t, 15000, cfg.Backend.Timeout)
	assert.Equal(t, 60000, cfg.Backend.UploadTimeout)
	assert.Equal(t, "dashboard_session", cfg.Session.CookieName)
	assert.Equal(t, 720, cfg.Session.TTLMinutes)
	assert.Equal(t, 16, cfg.Uploads.MaxFileSizeMB)
	assert.Contains(t, cfg.Uploads.AllowedExtensions, ".pdf")
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// ==========================
// Accessor Tests
// ==========================

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 15*time.Second, GetDuration(15000))
	assert.Equal(t, time.Duration(0), GetDuration(0))
	assert.Equal(t, 500*time.Millisecond, GetDuration(500))
}

func TestGetPageConfig(t *testing.T) {
	cfg := &Config{
		Pages: map[string]PageConfig{
			"applications": {Enabled: true, Timeout: 5000},
		},
	}

	page := GetPageConfig(cfg, "applications")
	assert.True(t, page.Enabled)
	assert.Equal(t, 5000, page.Timeout)

	fallback := GetPageConfig(cfg, "unknown-page")
	assert.True(t, fallback.Enabled)
	assert.Equal(t, 15000, fallback.Timeout)
}

func TestIsPageEnabled(t *testing.T) {
	cfg := &Config{
		Pages: map[string]PageConfig{
			"applications": {Enabled: true},
			"rate-sheet":   {Enabled: false},
		},
	}

	assert.True(t, IsPageEnabled(cfg, "applications"))
	assert.False(t, IsPageEnabled(cfg, "rate-sheet"))
	assert.True(t, IsPageEnabled(cfg, "never-configured"), "pages default to enabled")
}

func TestRedisConfig_GetAddr(t *testing.T) {
	assert.Equal(t, "redis.internal:6379", RedisConfig{Address: "redis.internal:6379"}.GetAddr())
	assert.Equal(t, "localhost:6379", RedisConfig{}.GetAddr())
}

func TestBackendConfig_Validate(t *testing.T) {
	assert.NoError(t, BackendConfig{BaseURL: "http://127.0.0.1:5000"}.Validate())
	assert.Error(t, BackendConfig{}.Validate())
}
