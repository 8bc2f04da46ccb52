// Package iologger sets up the global slog logger.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gnlineage/pkg/config"
)

// LogFile is the name of the log file in the log directory.
const LogFile = "gnlineage.log"

// Init makes slog write to the destination from the config.
// With the "file" destination the log goes to LogFile in logDir. When
// appendLog is false the file starts fresh on every run.
func Init(logDir string, cfg config.LogConfig, appendLog bool) error {
	var w io.Writer
	switch cfg.Destination {
	case "stdout":
		w = os.Stdout
	case "file":
		path := filepath.Join(logDir, LogFile)
		flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if appendLog {
			flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		f, err := os.OpenFile(path, flags, 0644)
		if err != nil {
			return CreateLogFileError(path, err)
		}
		w = f
	default:
		w = os.Stderr
	}

	slog.SetDefault(slog.New(newHandler(w, cfg)))
	return nil
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	if cfg.Format == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
