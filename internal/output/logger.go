/*
PURPOSE:
  Provides a structured logger for tflite2c.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - Progress lines only when --verbose is set.

  Implementation-discovered:
  - Warnings and errors must still surface without --verbose.

ARCHITECTURE INTEGRATION:
  - Used everywhere.

ERROR HANDLING:
  - N/A

IMPLEMENTATION RULES:
  - Use `log/slog` (Go 1.21+).

USAGE:
  output.Logger.Info("message", "key", "value")

SELF-HEALING INSTRUCTIONS:
  - Ensure Go 1.21+ is used.

RELATED FILES:
  - internal/cli/root.go (installs the verbose logger)

MAINTENANCE:
  - JSON handler for non-interactive use?
*/

package output

import (
	"io"
	"log/slog"
	"os"
)

var Logger *slog.Logger

func init() {
	Logger = NewLogger(os.Stderr, false)
}

// NewLogger returns a text logger writing to w. Verbose loggers emit Debug
// and above; quiet ones only warnings and errors.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// SetLogger allows overriding the default logger (e.g. for testing or config changes)
func SetLogger(l *slog.Logger) {
	Logger = l
}
