package debug

import (
	"log/slog"
	"runtime"
	"time"
)

// StartMemLogger logs Go heap stats, process RSS and the timer status every
// interval. A failing RSS query is logged once and then reported as zero.
func StartMemLogger(interval time.Duration, logger *slog.Logger, status StatusFunc) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var rssErrLogged bool
		for range ticker.C {
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			rss, err := processRSS()
			if err != nil && !rssErrLogged {
				logger.Warn("rss unavailable", slog.String("err", err.Error()))
				rssErrLogged = true
			}
			logMem(logger, &ms, runtime.NumGoroutine(), rss, status)
		}
	}()
}
