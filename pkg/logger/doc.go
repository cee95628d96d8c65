// Package logger builds configured slog loggers with JSON/text output,
// env-driven settings, and context attribute injection, plus typed attribute
// helpers for the membership domain (order ids, event kinds, handshake
// sources).
package logger
