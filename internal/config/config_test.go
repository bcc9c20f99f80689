package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"simplycapture/internal/encoder"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadFrom_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *cfg != *Default() {
		t.Fatalf("got %+v, want defaults", cfg)
	}
	if cfg.FPS != 20 || cfg.Hotkey != "Ctrl+Shift+S" || cfg.OutputDir != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFrom_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeFile(t, path, []byte(`{"output_dir":"D:\\rec","fps":30}`))

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != `D:\rec` || cfg.FPS != 30 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Hotkey != DefaultHotkey || cfg.JPEGQuality != DefaultJPEGQuality {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad json":     `{`,
		"fps zero":     `{"fps":0}`,
		"quality":      `{"jpeg_quality":101}`,
		"empty key":    `{"hotkey":" "}`,
		"bad loglevel": `{"log_level":"loud"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			writeFile(t, path, []byte(body))
			if _, err := LoadFrom(path); err == nil {
				t.Fatalf("expected error for %s", body)
			}
		})
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	want := Default()
	want.OutputDir = "/tmp/rec"
	want.StopIcon = "icon_stop.png"

	if err := SaveTo(path, want); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if *got != *want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestFlags_Override(t *testing.T) {
	f, err := ParseFlags("simplycapture", []string{"-out", "/videos", "-fps", "15", "-log-level", "debug"})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	cfg := Default()
	cfg.OutputDir = "/from-file"
	if err := f.Apply(cfg); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.OutputDir != "/videos" || cfg.FPS != 15 || cfg.LogLevel != "debug" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Hotkey != DefaultHotkey {
		t.Fatalf("unset flag changed hotkey to %q", cfg.Hotkey)
	}

	f, _ = ParseFlags("simplycapture", []string{"-fps", "500"})
	if err := f.Apply(Default()); err == nil {
		t.Fatalf("expected validation error for fps 500")
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{"": slog.LevelInfo, "debug": slog.LevelDebug, "WARN": slog.LevelWarn} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
}

func TestHeadlessFlags(t *testing.T) {
	f, err := ParseFlags("simplycapture", []string{"-region", "0,0,320,240", "-duration", "5s"})
	if err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if f.Region != "0,0,320,240" || f.Duration != 5*time.Second {
		t.Fatalf("flags = %+v", f)
	}
}

func TestValidateFrameRateMatchesEncoder(t *testing.T) {
	cfg := Default()
	cfg.FPS = encoder.MaxFrameRate
	if err := cfg.Validate(); err != nil {
		t.Fatalf("fps %d rejected: %v", cfg.FPS, err)
	}
	cfg.FPS = encoder.MaxFrameRate + 1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("fps %d accepted", cfg.FPS)
	}
}
