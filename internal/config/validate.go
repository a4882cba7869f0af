package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}
	if err := c.validateSuggestions(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDataset() error {
	if len(c.Dataset.Extensions) == 0 {
		return errors.New("dataset.extensions must list at least one image extension")
	}
	if strings.Contains(c.Dataset.Separator, "\n") {
		return errors.New("dataset.separator must not contain newlines")
	}
	if strings.TrimSpace(c.Dataset.Separator) == "" && c.Dataset.Separator != " " {
		return errors.New("dataset.separator must contain a visible delimiter")
	}
	return nil
}

func (c *Config) validateSuggestions() error {
	if c.Suggestions.SimilarityThreshold < 0 {
		return errors.New("suggestions.similarity_threshold must be zero or positive")
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.MaxDepth < 1 {
		return errors.New("history.max_depth must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
