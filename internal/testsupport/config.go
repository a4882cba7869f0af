// Package testsupport provides shared helpers for constructing test
// configurations and seeded dataset folders.
package testsupport

import (
	"path/filepath"
	"testing"

	"tagforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with repository defaults and a
// categories path inside a per-test temp directory. Options apply on top.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Categories.Path = filepath.Join(t.TempDir(), "categories.json")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithLowercase enables lowercase folding on the test config.
func WithLowercase() ConfigOption {
	return func(c *config.Config) {
		c.Dataset.EnforceLowercase = true
	}
}

// WithHistoryDepth overrides the undo history depth.
func WithHistoryDepth(depth int) ConfigOption {
	return func(c *config.Config) {
		c.History.MaxDepth = depth
	}
}

// WithSimilarityThreshold overrides the suggestion distance threshold.
func WithSimilarityThreshold(threshold int) ConfigOption {
	return func(c *config.Config) {
		c.Suggestions.SimilarityThreshold = threshold
	}
}

// WithSeparator overrides the sidecar tag separator.
func WithSeparator(sep string) ConfigOption {
	return func(c *config.Config) {
		c.Dataset.Separator = sep
	}
}
