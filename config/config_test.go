package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TickRate != 24 || cfg.DefaultDuration() != 600*time.Second || cfg.StoreBackend != StoreJSON {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestValidate_Clamps(t *testing.T) {
	cfg := &Config{TickRate: -1, ExpiryGraceMillis: -5, MinDurationMillis: 0, StoreBackend: "redis"}
	_ = cfg.Validate()
	if cfg.TickRate != 24 || cfg.ExpiryGraceMillis != 500 || cfg.MinDurationMillis != 100 {
		t.Fatalf("clamping failed: %+v", cfg)
	}
	if cfg.StoreBackend != StoreJSON || cfg.StorePath == "" {
		t.Fatalf("backend normalization failed: %+v", cfg)
	}
}

func TestDerivedDurations(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.TickInterval(); got != time.Second/24 {
		t.Fatalf("tick interval = %v", got)
	}
	if cfg.ExpiryGrace() != 500*time.Millisecond || cfg.MinDuration() != 100*time.Millisecond {
		t.Fatalf("unexpected grace/min: %v %v", cfg.ExpiryGrace(), cfg.MinDuration())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	cfg := DefaultConfig()
	cfg.TickRate = 30
	cfg.StoreBackend = StoreSQLite
	cfg.StorePath = filepath.Join(t.TempDir(), "timer.db")
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if cfg == nil || cfg.TickRate != 24 {
		t.Fatalf("expected defaults alongside the error, got %+v", cfg)
	}
}

func TestLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"trace":   LevelTrace,
		"DEBUG":   slog.LevelDebug,
		" info ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		cfg := &Config{LogLevel: in}
		if got := cfg.Level(); got != want {
			t.Fatalf("Level(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestReplaceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: LevelTrace, ReplaceAttr: ReplaceLevel}))
	logger.Log(t.Context(), LevelTrace, "tick")
	logger.Debug("dbg")

	dec := json.NewDecoder(&buf)
	for _, want := range []string{"TRACE", "DEBUG"} {
		var line map[string]any
		if err := dec.Decode(&line); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if line["level"] != want {
			t.Fatalf("level = %v, want %s", line["level"], want)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyOverrides("debug", true, StoreSQLite)
	if cfg.LogLevel != "debug" || !cfg.Debug || cfg.StoreBackend != StoreSQLite {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.StorePath != DefaultStorePath(StoreSQLite) {
		t.Fatalf("default store path should follow the backend, got %s", cfg.StorePath)
	}

	custom := DefaultConfig()
	custom.StorePath = "/tmp/elsewhere.db"
	custom.ApplyOverrides("", false, StoreSQLite)
	if custom.StorePath != "/tmp/elsewhere.db" || custom.LogLevel != "info" || custom.Debug {
		t.Fatalf("explicit values should survive: %+v", custom)
	}
}
