package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Log is the lab-wide logger. cmd/axlab is the only package that logs
// through it; the internal packages do not log.
var Log *slog.Logger

// Init sets up the global logger from a level name (debug, info, warn,
// error; anything else selects debug) and an optional log file path,
// as given by the CLI's --log-level and --log-file flags. If logFile's
// parent directory doesn't exist
// yet (a fresh project's .axlab/ tree), it is created the same way
// store.Open provisions its artifact root.
func Init(logLevel string, logFile string) error {
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelDebug
	}

	writers := []io.Writer{os.Stdout}

	if logFile != "" {
		if dir := filepath.Dir(logFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		writers = append(writers, f)
	}

	multiWriter := io.MultiWriter(writers...)

	// Runs can last hours; a full RFC3339 timestamp on every line is
	// noise once the date is implied by the run's own log file name, so
	// it's shortened to wall-clock time.
	handler := slog.NewTextHandler(multiWriter, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String("time", a.Value.Time().Format("15:04:05"))
			}
			return a
		},
	})

	Log = slog.New(handler)
	slog.SetDefault(Log)

	return nil
}

// Debug logs at debug level
func Debug(msg string, args ...any) {
	Log.Debug(msg, args...)
}

// Info logs at info level
func Info(msg string, args ...any) {
	Log.Info(msg, args...)
}

// Warn logs at warn level
func Warn(msg string, args ...any) {
	Log.Warn(msg, args...)
}

// Error logs at error level
func Error(msg string, args ...any) {
	Log.Error(msg, args...)
}
