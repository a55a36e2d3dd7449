// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig             `mapstructure:"app"`
	Server  ServerConfig          `mapstructure:"server"`
	Backend BackendConfig         `mapstructure:"backend"`
	Session SessionConfig         `mapstructure:"session"`
	Pages   map[string]PageConfig `mapstructure:"pages"`
	Uploads UploadConfig          `mapstructure:"uploads"`
	Logging LoggingConfig         `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds settings for the dashboard HTTP server.
type ServerConfig struct {
	Address         string   `mapstructure:"address"`
	ReadTimeout     int      `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int      `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // milliseconds
	TemplateGlob    string   `mapstructure:"template_glob"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
}

// BackendConfig holds settings for the upstream mortgage API.
type BackendConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	Timeout       int    `mapstructure:"timeout"`        // milliseconds
	UploadTimeout int    `mapstructure:"upload_timeout"` // milliseconds, document reads are slow
}

// SessionConfig holds settings for the redis-backed session store.
type SessionConfig struct {
	Redis        RedisConfig `mapstructure:"redis"`
	CookieName   string      `mapstructure:"cookie_name"`
	TTLMinutes   int         `mapstructure:"ttl_minutes"`
	SecureCookie bool        `mapstructure:"secure_cookie"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GetAddr returns the redis address with a sane fallback.
func (r RedisConfig) GetAddr() string {
	if r.Address != "" {
		return r.Address
	}
	return "localhost:6379"
}

// PageConfig holds the core settings applicable to every page handler.
type PageConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Timeout int  `mapstructure:"timeout"` // milliseconds, per backend call
}

// UploadConfig holds settings for borrower document uploads.
type UploadConfig struct {
	MaxFileSizeMB     int      `mapstructure:"max_file_size_mb"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Validate reports missing critical backend settings.
func (b BackendConfig) Validate() error {
	if b.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	return nil
}
