// Package logger sets up the one process-wide slog.Logger. Level and format come from
// LOG_LEVEL (debug, info, warn, error) and LOG_FORMAT (text, json).
package logger

import(
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var(
	mu            sync.Mutex
	defaultLogger *slog.Logger
)

// Setup builds the default logger from the environment, writing to stderr.
func Setup() *slog.Logger { return SetupWriter(os.Stderr) }

func SetupWriter(w io.Writer) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug": lvl = slog.LevelDebug
	case "warn":  lvl = slog.LevelWarn
	case "error": lvl = slog.LevelError
	}

	var h slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	} else {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	}

	mu.Lock()
	defer mu.Unlock()
	defaultLogger = slog.New(h)
	return defaultLogger
}

// L returns the default logger, setting it up if nobody has yet.
func L() *slog.Logger {
	mu.Lock()
	l := defaultLogger
	mu.Unlock()

	if l == nil { return Setup() }
	return l
}

// Or returns l, unless it is nil, in which case it returns the default logger.
func Or(l *slog.Logger) *slog.Logger {
	if l != nil { return l }
	return L()
}

// Discard is a logger that drops everything; handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError+1}))
}
