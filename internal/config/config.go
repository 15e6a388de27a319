// Package config loads service configuration from optional YAML and the
// process environment using a layered system: defaults -> file -> env vars.
package config

import "github.com/jacentio/todos/store"

// Config holds all configuration for the service.
type Config struct {
	Store store.Config `koanf:"store"`
	Log   LogConfig    `koanf:"log"`
	Dev   DevConfig    `koanf:"dev"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// DevConfig holds settings for the local development gateway.
type DevConfig struct {
	Addr string `koanf:"addr"`
}

// Default returns the configuration used before any layer is applied.
func Default() Config {
	return Config{
		Store: store.DefaultConfig(),
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Dev: DevConfig{
			Addr: ":3000",
		},
	}
}
