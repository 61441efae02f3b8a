package debug

// Debug goroutine metrics logger. Started only when config.Debug is true.
// Emits goroutine count, stack usage and the timer status at a fixed interval.

import (
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// StatusFunc returns extra key/value pairs appended to each debug log line.
type StatusFunc func() []any

// StartGoroutineLogger launches a ticker that logs goroutine count, stack
// memory and timer status. Disable by running without the debug flag.
func StartGoroutineLogger(interval time.Duration, logger *slog.Logger, status StatusFunc) {
	if interval <= 0 {
		interval = time.Second
	}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		for range t.C {
			metrics.Read(samples)
			goroutines := samples[0].Value.Uint64()
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			args := []any{
				slog.Uint64("goroutines", goroutines),
				slog.Uint64("stack_inuse", ms.StackInuse),
				slog.Uint64("stack_sys", ms.StackSys),
				slog.Uint64("heap_alloc", ms.HeapAlloc),
			}
			logger.Info("goroutine-stacks", append(args, statusArgs(status)...)...)
		}
	}()
}

func statusArgs(p StatusFunc) []any {
	if p == nil {
		return nil
	}
	return p()
}

func logMem(logger *slog.Logger, ms *runtime.MemStats, goroutines int, rss uint64, status StatusFunc) {
	args := []any{
		slog.Int("goroutines", goroutines),
		slog.Uint64("heap_alloc", ms.HeapAlloc),
		slog.Uint64("heap_inuse", ms.HeapInuse),
		slog.Uint64("heap_idle", ms.HeapIdle),
		slog.Uint64("heap_sys", ms.HeapSys),
		slog.Uint64("next_gc", ms.NextGC),
		slog.Uint64("rss", rss),
		slog.Uint64("num_gc", uint64(ms.NumGC)),
	}
	logger.Info("memstats", append(args, statusArgs(status)...)...)
}
