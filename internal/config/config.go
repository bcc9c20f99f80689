package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"simplycapture/internal/encoder"
)

const (
	DefaultHotkey      = "Ctrl+Shift+S"
	DefaultFPS         = 20
	DefaultJPEGQuality = 85
	DefaultIcon        = "icon.png"
)

// Default returns the built-in configuration. OutputDir stays empty, which
// means the working directory.
func Default() *Config {
	return &Config{
		Hotkey:      DefaultHotkey,
		FPS:         DefaultFPS,
		JPEGQuality: DefaultJPEGQuality,
		StartIcon:   DefaultIcon,
		StopIcon:    DefaultIcon,
		LogLevel:    "info",
	}
}

// LoadFrom reads path. A missing file yields the defaults; keys absent from
// the file keep their default values.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Path is the default config file location.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(dir, "simplycapture", "config.json")
}

// Validate rejects values the recorder cannot use.
func (c *Config) Validate() error {
	if c.FPS < 1 || c.FPS > encoder.MaxFrameRate {
		return fmt.Errorf("fps must be 1-%d, got %d", encoder.MaxFrameRate, c.FPS)
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be 1-100, got %d", c.JPEGQuality)
	}
	if strings.TrimSpace(c.Hotkey) == "" {
		return errors.New("hotkey must not be empty")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log_level value to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", s)
	}
	return lvl, nil
}

// Flags holds command line overrides. Empty or zero fields are unset.
type Flags struct {
	ConfigPath string
	OutputDir  string
	FPS        int
	Hotkey     string
	AssetDir   string
	LogLevel   string

	// Region and Duration drive a recording without the tray.
	Region   string
	Duration time.Duration
}

// ParseFlags parses args into Flags.
func ParseFlags(name string, args []string) (*Flags, error) {
	f := &Flags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&f.ConfigPath, "config", Path(), "Path to the JSON config file")
	fs.StringVar(&f.OutputDir, "out", "", "Folder for recordings (default: working directory)")
	fs.IntVar(&f.FPS, "fps", 0, "Recording frame rate (default 20)")
	fs.StringVar(&f.Hotkey, "hotkey", "", "Global stop hotkey, e.g. Ctrl+Shift+S")
	fs.StringVar(&f.AssetDir, "assets", "", "Folder containing the tray icons")
	fs.StringVar(&f.LogLevel, "log-level", "", "debug, info, warn or error")
	fs.StringVar(&f.Region, "region", "", "Record left,top,width,height without the tray")
	fs.DurationVar(&f.Duration, "duration", 0, "Stop a -region recording after this long (default: until interrupted)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// Apply copies the set flags over cfg and validates the result.
func (f *Flags) Apply(cfg *Config) error {
	if f.OutputDir != "" {
		cfg.OutputDir = f.OutputDir
	}
	if f.FPS != 0 {
		cfg.FPS = f.FPS
	}
	if f.Hotkey != "" {
		cfg.Hotkey = f.Hotkey
	}
	if f.AssetDir != "" {
		cfg.AssetDir = f.AssetDir
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	return cfg.Validate()
}
