package config

import (
	"errors"
	"fmt"
)

// Validate checks all configuration values and returns aggregated errors.
func (c *Config) Validate() error {
	return errors.Join(
		c.Log.validate(),
		c.Dev.validate(),
		validateStore(c),
	)
}

func (l *LogConfig) validate() error {
	var errs []error

	switch l.Level {
	case "debug", "info", "warn", "error":
		// Valid levels.
	default:
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error; got %q", l.Level))
	}

	switch l.Format {
	case "json", "text":
		// Valid formats.
	default:
		errs = append(errs, fmt.Errorf("log.format must be one of: json, text; got %q", l.Format))
	}

	return errors.Join(errs...)
}

func (d *DevConfig) validate() error {
	if d.Addr == "" {
		return errors.New("dev.addr must not be empty")
	}
	return nil
}

func validateStore(c *Config) error {
	if c.Store.ScanLimit < 1 {
		return fmt.Errorf("store.scan_limit must be >= 1, got %d", c.Store.ScanLimit)
	}
	return nil
}
