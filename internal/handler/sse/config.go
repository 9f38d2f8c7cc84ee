package sse

import "time"

// Config holds configuration for SSE responses
type Config struct {
	// KeepAliveInterval is how often a comment line is sent while no event
	// is due, so proxies do not close an idle upload stream
	KeepAliveInterval time.Duration
}

// DefaultConfig returns the default SSE configuration
func DefaultConfig() *Config {
	return &Config{
		KeepAliveInterval: 10 * time.Second,
	}
}
