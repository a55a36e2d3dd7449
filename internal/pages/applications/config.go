// internal/pages/applications/config.go
package applications

import "time"

type Config struct {
	Timeout       time.Duration
	SubmissionTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       15 * time.Second,
		SubmissionTTL: 2 * time.Minute,
	}
}
