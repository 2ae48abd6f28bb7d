package logging

import (
	"os"
)

// DebugEnabled returns true if debug mode is enabled via TL_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("TL_DEBUG") != ""
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		debugLogger().Debugf(format, args...)
	}
}

// Debugln logs a debug message only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() && len(args) > 0 {
		debugLogger().Debug(args[0], args[1:]...)
	}
}
