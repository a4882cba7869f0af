package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Dataset contains configuration for scanning and serializing tag sidecars.
type Dataset struct {
	// Separator joins tags in sidecar files. Default: ", ".
	Separator string `toml:"separator"`
	// Extensions lists the image file extensions considered part of the dataset.
	Extensions []string `toml:"extensions"`
	// Recursive enables scanning subdirectories of the dataset folder.
	Recursive bool `toml:"recursive"`
	// EnforceLowercase folds every tag to lowercase on save.
	EnforceLowercase bool `toml:"enforce_lowercase"`
}

// Suggestions contains configuration for near-duplicate tag suggestions.
type Suggestions struct {
	// SimilarityThreshold is the maximum Levenshtein distance at which a
	// known tag is suggested as a near-duplicate. Default: 2.
	SimilarityThreshold int `toml:"similarity_threshold"`
}

// History contains configuration for the bounded undo history.
type History struct {
	// MaxDepth is the number of saves kept for undo. Oldest entries are
	// evicted first. Default: 10.
	MaxDepth int `toml:"max_depth"`
}

// Categories contains configuration for the category classifier.
type Categories struct {
	// Path points at the category definition file (JSON). The classifier
	// refuses to start without it.
	Path string `toml:"path"`
}

// Journal contains configuration for the per-dataset mutation journal.
type Journal struct {
	Enabled bool `toml:"enabled"`
}

// Prompt contains configuration for embedded generation prompt extraction.
type Prompt struct {
	// Blacklist phrases are stripped from extracted positive prompts.
	Blacklist []string `toml:"blacklist"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	// OutputPaths lists log destinations: "stderr", "stdout", or file
	// paths. Empty means stderr.
	OutputPaths []string `toml:"output_paths"`
}

// Config encapsulates all configuration values for tagforge.
//
// Configuration sections by subsystem:
//   - Dataset: sidecar separator, scan extensions, case folding
//   - Suggestions: similarity threshold for near-duplicate detection
//   - History: undo depth
//   - Categories: category definition file location
//   - Journal: per-dataset mutation journal toggle
//   - Prompt: embedded prompt extraction blacklist
//   - Logging: log format and level
type Config struct {
	Dataset     Dataset     `toml:"dataset"`
	Suggestions Suggestions `toml:"suggestions"`
	History     History     `toml:"history"`
	Categories  Categories  `toml:"categories"`
	Journal     Journal     `toml:"journal"`
	Prompt      Prompt      `toml:"prompt"`
	Logging     Logging     `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/tagforge/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has the categories path expanded and all values normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tagforge.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
