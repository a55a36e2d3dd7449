// internal/pages/loandetails/config.go
package loandetails

import "time"

type Config struct {
	Timeout time.Duration
	// RecommendationTimeout is longer since the upstream call waits on an LLM.
	RecommendationTimeout time.Duration
	// MaxFileSizeMB caps document uploads; zero disables the check.
	MaxFileSizeMB int
	// AllowedExtensions whitelists upload file types; empty allows any.
	AllowedExtensions []string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:               15 * time.Second,
		RecommendationTimeout: 60 * time.Second,
		MaxFileSizeMB:         16,
		AllowedExtensions:     []string{".pdf", ".png", ".jpg", ".jpeg", ".csv"},
	}
}
