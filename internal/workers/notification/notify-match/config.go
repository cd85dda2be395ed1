// internal/workers/notification/notify-match/config.go
package notifymatch

import "time"

type Config struct {
	EmailEnabled      bool
	SMSEnabled        bool
	FromEmail         string
	AWSRegion         string
	MinNotifyScore    float64
	SMSScoreThreshold float64
	Timeout           time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MinNotifyScore:    70.0,
		SMSScoreThreshold: 85.0,
		Timeout:           30 * time.Second,
	}
}
