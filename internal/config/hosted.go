package config

import (
	"errors"
	"os"
	"sync"
	"time"
)

// HostedConfig points at the hosted data service. Both values are required.
type HostedConfig struct {
	URL     string
	AnonKey string
	Timeout time.Duration
}

var (
	hostedConfig *HostedConfig
	hostedOnce   sync.Once
)

func LoadHostedConfig() *HostedConfig {
	hostedOnce.Do(func() {
		timeout, err := time.ParseDuration(os.Getenv("SUPABASE_TIMEOUT"))
		if err != nil || timeout <= 0 {
			timeout = 30 * time.Second
		}
		hostedConfig = &HostedConfig{
			URL:     os.Getenv("SUPABASE_URL"),
			AnonKey: os.Getenv("SUPABASE_ANON_KEY"),
			Timeout: timeout,
		}
	})
	return hostedConfig
}

func (c *HostedConfig) Validate() error {
	if c.URL == "" || c.AnonKey == "" {
		return errors.New("missing data service environment variables: SUPABASE_URL and SUPABASE_ANON_KEY are required")
	}
	return nil
}
