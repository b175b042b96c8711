package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger is the application's structured logger
var Logger *slog.Logger

func init() {
	// Default to discarding logs until InitLogger is called
	Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// InitLogger points Logger at logPath. An empty path discards logs.
// Nothing is ever written to stderr, which would corrupt the TUI.
// The log file is created with mode 0600 (user-only).
func InitLogger(logPath string) error {
	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}

	if logPath == "" {
		handler = slog.NewTextHandler(io.Discard, opts)
	} else {
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			return err
		}

		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return err
		}
		handler = slog.NewTextHandler(file, opts)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
	return nil
}
