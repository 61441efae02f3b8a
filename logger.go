package main

import (
	"log/slog"
	"os"

	"github.com/soocke/countdown-go/config"
)

// NewLogger returns the JSON logger for the countdown process. Debug mode
// adds source positions so tick and persistence lines can be traced to code.
func NewLogger(level slog.Leveler, debug bool) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		AddSource:   debug,
		ReplaceAttr: config.ReplaceLevel,
	})
	return slog.New(h).With("app", "countdown", "pid", os.Getpid())
}
