// internal/workers/profile/extract-resume-skills/config.go
package extractresumeskills

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
