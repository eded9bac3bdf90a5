package logger

import (
	"time"
)

const defaultTimestampFormat = time.RFC3339

// LoggerConfig describes configuration for a logger.
type LoggerConfig struct {
	Level      string
	Formatter  string
	OutputFile string
	TextFormat *TextFormatConfig
	JSONFormat *JSONFormatConfig
}

// TextFormatConfig describes configuration for the text formatter.
type TextFormatConfig struct {
	DisableColors    bool
	ForceColors      bool
	DisableTimestamp bool
	FullTimestamp    bool
	TimestampFormat  string
	DisableSorting   bool
	Indent           string
}

// JSONFormatConfig describes configuration for the JSON formatter.
type JSONFormatConfig struct {
	DisableTimestamp bool
	TimestampFormat  string
}

// DefaultConfig returns a LoggerConfig instance with default values.
func DefaultConfig() LoggerConfig {
	return LoggerConfig{
		Level:     "info",
		Formatter: "text",
		TextFormat: &TextFormatConfig{
			FullTimestamp:   true,
			TimestampFormat: defaultTimestampFormat,
		},
		JSONFormat: &JSONFormatConfig{
			TimestampFormat: defaultTimestampFormat,
		},
	}
}

// DebugConfig returns a LoggerConfig instance with default values useful for testing/debugging.
func DebugConfig() LoggerConfig {
	return LoggerConfig{
		Level:     "debug",
		Formatter: "text",
		TextFormat: &TextFormatConfig{
			ForceColors:     true,
			FullTimestamp:   true,
			TimestampFormat: defaultTimestampFormat,
		},
		JSONFormat: &JSONFormatConfig{
			TimestampFormat: defaultTimestampFormat,
		},
	}
}
