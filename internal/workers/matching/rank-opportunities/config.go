// internal/workers/matching/rank-opportunities/config.go
package rankopportunities

import "time"

type Config struct {
	MaxItems int
	Timeout  time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxItems: 50,
		Timeout:  30 * time.Second,
	}
}
