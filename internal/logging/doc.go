// Package logging builds the slog loggers used across tagforge.
//
// It provides a console handler for interactive use, a JSON handler for
// machine-readable output, attribute helpers with standardized field keys,
// and no-op/component logger constructors so packages can accept an optional
// *slog.Logger without nil checks.
package logging
