package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Store backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
)

// Config holds runtime configuration for the timer and app behavior.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug    bool   `json:"debug"`
	LogLevel string `json:"log_level"`

	// Timer behavior
	TickRate               int    `json:"tick_rate"` // display updates per second while running
	ExpiryGraceMillis      int    `json:"expiry_grace_ms"`
	MinDurationMillis      int    `json:"min_duration_ms"`
	DefaultDurationSeconds int    `json:"default_duration_seconds"`
	AlarmTitle             string `json:"alarm_title"`

	// Persistence
	StoreBackend string `json:"store_backend"`
	StorePath    string `json:"store_path"`

	// Window
	WindowWidth  int  `json:"window_width"`
	WindowHeight int  `json:"window_height"`
	DarkMode     bool `json:"dark_mode"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:                  false,
		LogLevel:               "info",
		TickRate:               24,
		ExpiryGraceMillis:      500,
		MinDurationMillis:      100,
		DefaultDurationSeconds: 600,
		AlarmTitle:             "Timer Done",
		StoreBackend:           StoreJSON,
		StorePath:              DefaultStorePath(StoreJSON),
		WindowWidth:            360,
		WindowHeight:           300,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.TickRate <= 0 || c.TickRate > 120 {
		c.TickRate = 24
	}
	if c.ExpiryGraceMillis < 0 {
		c.ExpiryGraceMillis = 500
	}
	if c.MinDurationMillis <= 0 {
		c.MinDurationMillis = 100
	}
	if c.DefaultDurationSeconds < 0 {
		c.DefaultDurationSeconds = 600
	}
	if c.AlarmTitle == "" {
		c.AlarmTitle = "Timer Done"
	}
	switch c.StoreBackend {
	case StoreJSON, StoreSQLite:
	default:
		c.StoreBackend = StoreJSON
	}
	if c.StorePath == "" {
		c.StorePath = DefaultStorePath(c.StoreBackend)
	}
	if c.WindowWidth < 200 {
		c.WindowWidth = 360
	}
	if c.WindowHeight < 150 {
		c.WindowHeight = 300
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}

// TickInterval is the period between display updates while running.
func (c *Config) TickInterval() time.Duration { return time.Second / time.Duration(c.TickRate) }

// ExpiryGrace is how far past zero the timer may run before expiring.
func (c *Config) ExpiryGrace() time.Duration {
	return time.Duration(c.ExpiryGraceMillis) * time.Millisecond
}

// MinDuration is the shortest startable duration.
func (c *Config) MinDuration() time.Duration {
	return time.Duration(c.MinDurationMillis) * time.Millisecond
}

// DefaultDuration is the configured duration when no timer was stored.
func (c *Config) DefaultDuration() time.Duration {
	return time.Duration(c.DefaultDurationSeconds) * time.Second
}

// LevelTrace is below debug and enables per-tick logging.
const LevelTrace = slog.Level(-8)

var logLevels = map[string]slog.Level{
	"trace":   LevelTrace,
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warning": slog.LevelWarn,
	"warn":    slog.LevelWarn,
	"error":   slog.LevelError,
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c *Config) Level() slog.Level {
	if lvl, ok := logLevels[strings.ToLower(strings.TrimSpace(c.LogLevel))]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// ReplaceLevel is a slog ReplaceAttr func that prints LevelTrace as "TRACE"
// instead of "DEBUG-4".
func ReplaceLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl <= LevelTrace {
			a.Value = slog.StringValue("TRACE")
		}
	}
	return a
}

// ApplyOverrides sets values given on the command line. Empty strings and
// false leave the loaded value alone. Switching the store backend also moves
// the store path when it still points at the old backend's default.
func (c *Config) ApplyOverrides(logLevel string, debug bool, storeBackend string) {
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if debug {
		c.Debug = true
	}
	if storeBackend != "" && storeBackend != c.StoreBackend {
		if c.StorePath == DefaultStorePath(c.StoreBackend) {
			c.StorePath = ""
		}
		c.StoreBackend = storeBackend
	}
	_ = c.Validate()
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// Dir returns the per-user directory holding config and timer state.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "countdown")
}

// DefaultStorePath is the per-user timer state location for backend.
func DefaultStorePath(backend string) string {
	if backend == StoreSQLite {
		return filepath.Join(Dir(), "timer.db")
	}
	return filepath.Join(Dir(), "timer.json")
}
