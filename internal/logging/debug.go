package logging

import (
	"log/slog"
	"os"
)

// DebugEnv forces debug logging when set to any non-empty value.
const DebugEnv = "TASKAPI_DEBUG"

// DebugEnabled returns true if debug mode is enabled via TASKAPI_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// EffectiveLevel returns the configured level, or debug when debug mode is enabled.
func EffectiveLevel(levelStr string) slog.Level {
	if DebugEnabled() {
		return slog.LevelDebug
	}
	return ParseLevel(levelStr)
}
