// internal/pages/auth/config.go
package auth

import (
	"time"

	"mortgage-dashboard/internal/common/config"
)

type Config struct {
	Timeout      time.Duration
	CookieName   string
	CookieMaxAge int // seconds
	SecureCookie bool
}

// ConfigFromSession builds the page config from the app's session settings.
func ConfigFromSession(cfg config.SessionConfig) *Config {
	return &Config{
		Timeout:      15 * time.Second,
		CookieName:   cfg.CookieName,
		CookieMaxAge: cfg.TTLMinutes * 60,
		SecureCookie: cfg.SecureCookie,
	}
}
