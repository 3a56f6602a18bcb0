package boxtree

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/agiangrant/boxtree/retained"
	"github.com/pelletier/go-toml/v2"
)

// Config is the boxtree.toml document.
type Config struct {
	DPI    DPIConfig    `toml:"dpi"`
	Font   FontConfig   `toml:"font"`
	Paint  PaintConfig  `toml:"paint"`
	Limits LimitsConfig `toml:"limits"`
	Debug  DebugConfig  `toml:"debug"`
}

type DPIConfig struct {
	// Base is the DPI at which one point equals one device unit.
	Base float32 `toml:"base"`
	X    float32 `toml:"x"`
	Y    float32 `toml:"y"`
}

type FontConfig struct {
	Family string `toml:"family"`
	// Size in points
	Size float32 `toml:"size"`
}

type PaintConfig struct {
	// Mode is "immediate" or "deferred"
	Mode string `toml:"mode"`
}

type LimitsConfig struct {
	// 0 means unbounded
	MaxElements     int `toml:"max_elements"`
	MaxSurfaces     int `toml:"max_surfaces"`
	ValidationLimit int `toml:"validation_limit"`
}

type DebugConfig struct {
	Assertions bool   `toml:"assertions"`
	LogLevel   string `toml:"log_level"`
}

// DefaultConfig returns 96 DPI, 10pt sans, immediate painting and warn
// level logging.
func DefaultConfig() Config {
	return Config{
		DPI:   DPIConfig{Base: 96, X: 96, Y: 96},
		Font:  FontConfig{Family: "sans", Size: 10},
		Paint: PaintConfig{Mode: "immediate"},
		Limits: LimitsConfig{
			ValidationLimit: 1 << 20,
		},
		Debug: DebugConfig{LogLevel: "warn"},
	}
}

// ParseConfig decodes a TOML document on top of the defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfig reads path. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports values the engine cannot use.
func (c Config) Validate() error {
	var errs []error
	if c.DPI.Base <= 0 || c.DPI.X <= 0 || c.DPI.Y <= 0 {
		errs = append(errs, fmt.Errorf("dpi values must be positive, got base=%v x=%v y=%v", c.DPI.Base, c.DPI.X, c.DPI.Y))
	}
	if c.Font.Size <= 0 {
		errs = append(errs, fmt.Errorf("font.size must be positive, got %v", c.Font.Size))
	}
	if _, err := parsePaintingMode(c.Paint.Mode); err != nil {
		errs = append(errs, err)
	}
	if _, err := parseLevel(c.Debug.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Limits.MaxElements < 0 || c.Limits.MaxSurfaces < 0 || c.Limits.ValidationLimit < 0 {
		errs = append(errs, errors.New("limits must not be negative"))
	}
	return errors.Join(errs...)
}

// Options converts the config for retained.NewContext. Invalid values fall
// back to the retained defaults.
func (c Config) Options() retained.Options {
	mode, _ := parsePaintingMode(c.Paint.Mode)
	return retained.Options{
		BaseDPI:           c.DPI.Base,
		DPIX:              c.DPI.X,
		DPIY:              c.DPI.Y,
		DefaultFontFamily: c.Font.Family,
		DefaultFontSize:   retained.Pt(c.Font.Size),
		PaintingMode:      mode,
		MaxElements:       c.Limits.MaxElements,
		MaxSurfaces:       c.Limits.MaxSurfaces,
		ValidationLimit:   c.Limits.ValidationLimit,
		DebugAssertions:   c.Debug.Assertions,
	}
}

// LogLevel returns the configured slog level, Warn if unset or unknown.
func (c Config) LogLevel() slog.Level {
	level, err := parseLevel(c.Debug.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

func parsePaintingMode(s string) (retained.PaintingMode, error) {
	switch strings.ToLower(s) {
	case "", "immediate":
		return retained.PaintImmediate, nil
	case "deferred":
		return retained.PaintDeferred, nil
	}
	return retained.PaintImmediate, fmt.Errorf("unknown paint.mode %q", s)
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("unknown debug.log_level %q", s)
}
