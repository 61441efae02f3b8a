package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/soocke/countdown-go/app"
	"github.com/soocke/countdown-go/config"
)

func main() {
	cfgPath := flag.String("config", filepath.Join(config.Dir(), "config.json"), "path to the JSON config file")
	logLevel := flag.String("log-level", "", "log level: trace, debug, info, warning, error")
	debugMode := flag.Bool("debug", false, "enable debug loggers and strict transition checks")
	storeBackend := flag.String("store", "", "timer store backend: json or sqlite")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		NewLogger(slog.LevelInfo, false).Error("config load failed, using defaults", "path", *cfgPath, "error", err)
	}
	cfg.ApplyOverrides(*logLevel, *debugMode, *storeBackend)

	logger := NewLogger(cfg.Level(), cfg.Debug)
	logger.Info("starting", "config", *cfgPath, "store", cfg.StoreBackend, "store_path", cfg.StorePath)

	application, err := app.NewApp("Countdown", cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	application.Start()
}
