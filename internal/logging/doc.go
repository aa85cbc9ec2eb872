// Package logging assembles the structured slog loggers used across filescape.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and exposes component-tagged child loggers so pipeline stages emit data with
// the same shape. A no-op logger is provided for tests and wiring code that
// cannot fail.
package logging
