package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New creates the application logger: JSON on stdout, tagged with the
// service name. LOG_LEVEL=debug switches on debug output.
func New() *slog.Logger {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("service", "wassalha"))
}
