package obs

import (
	"log/slog"
	"os"
)

// NewLogger configures slog with a JSON handler for production-like envs and
// a plain text handler in dev.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo
	var handler slog.Handler
	handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	if env == "dev" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	return slog.New(handler)
}
