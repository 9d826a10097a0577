package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// ServerConfig holds the process-wide settings for the Blitz server.
type ServerConfig struct {
	Addr string `json:"addr"`
	// DefaultJokers is used when a create request omits the joker count.
	DefaultJokers int `json:"default_jokers"`
	// ShutdownGraceSeconds bounds how long in-flight streams get to finish
	// on shutdown.
	ShutdownGraceSeconds int `json:"shutdown_grace_seconds"`
}

var (
	cfg      *ServerConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadServerConfig loads the server configuration from the given path.
func LoadServerConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read server config: %w", err)
			return
		}

		var c ServerConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal server config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetServerConfig returns the global server configuration with defaults
// filled in for anything the file did not set.
func GetServerConfig() *ServerConfig {
	out := ServerConfig{
		Addr:                 ":8080",
		DefaultJokers:        2,
		ShutdownGraceSeconds: 5,
	}
	if cfg != nil {
		if cfg.Addr != "" {
			out.Addr = cfg.Addr
		}
		if cfg.DefaultJokers > 0 {
			out.DefaultJokers = cfg.DefaultJokers
		}
		if cfg.ShutdownGraceSeconds > 0 {
			out.ShutdownGraceSeconds = cfg.ShutdownGraceSeconds
		}
	}
	if addr := os.Getenv("BLITZ_ADDR"); addr != "" {
		out.Addr = addr
	}
	return &out
}
