// Package config loads, normalizes, and validates tagforge configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI and engine need: sidecar separator, supported image extensions,
// similarity threshold, undo depth, and the category definition location.
//
// Always obtain settings through this package so downstream code receives
// sanitized extensions, canonical log formats, and clear validation errors.
package config
