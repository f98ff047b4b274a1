// Package logger builds configured slog.Logger instances.
//
// The factory supports JSON and text output, environment presets, static
// attributes, and context extractors that inject request-scoped values into
// every record through a handler decorator.
package logger
