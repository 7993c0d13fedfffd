// Package obs contains observability utilities such as logging.
package obs

import (
	"log/slog"
	"os"
)

// Logger is the global structured logger shared by all demo services.
var Logger *slog.Logger

// InitLogger initializes the global Logger with a JSON handler.
// Level defaults to info; set LOG_LEVEL=debug to lower it.
func InitLogger() {
	level := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	Logger = slog.New(h)
}

func init() {
	// Packages log before main calls InitLogger in some tests.
	InitLogger()
}
