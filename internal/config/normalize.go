package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeDataset()
	if err := c.normalizeCategories(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeDataset() {
	if c.Dataset.Separator == "" {
		c.Dataset.Separator = defaultSeparator
	}
	if len(c.Dataset.Extensions) == 0 {
		c.Dataset.Extensions = defaultExtensions()
	}
	normalized := make([]string, 0, len(c.Dataset.Extensions))
	for _, ext := range c.Dataset.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	c.Dataset.Extensions = normalized
}

func (c *Config) normalizeCategories() error {
	path := strings.TrimSpace(c.Categories.Path)
	if path == "" {
		path = defaultCategoriesPath
	}
	expanded, err := expandPath(path)
	if err != nil {
		return fmt.Errorf("categories.path: %w", err)
	}
	c.Categories.Path = expanded
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}

	cleaned := make([]string, 0, len(c.Logging.OutputPaths))
	for _, path := range c.Logging.OutputPaths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if path != "stdout" && path != "stderr" {
			expanded, err := expandPath(path)
			if err != nil {
				return fmt.Errorf("logging.output_paths: %w", err)
			}
			path = expanded
		}
		cleaned = append(cleaned, path)
	}
	c.Logging.OutputPaths = cleaned
	return nil
}
