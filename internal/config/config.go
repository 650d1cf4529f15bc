package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	appDir   = "draglabel"
	fileName = "config.toml"
)

// Config holds presentation settings and recognizer tuning
type Config struct {
	Text            string  `toml:"text"`
	TextColor       string  `toml:"text_color"`
	BackgroundColor string  `toml:"background_color"`
	ContainerColor  string  `toml:"container_color"`
	HighlightColor  string  `toml:"highlight_color"`
	Bold            bool    `toml:"bold"`
	Italic          bool    `toml:"italic"`
	Monospace       bool    `toml:"monospace"`
	DragThreshold   float64 `toml:"drag_threshold"`
	SnapTolerance   float64 `toml:"snap_tolerance"`
	WindowWidth     float64 `toml:"window_width"`
	WindowHeight    float64 `toml:"window_height"`
	Debug           bool    `toml:"debug"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Text:            "Drag me",
		TextColor:       "#FFFFFF",
		BackgroundColor: "#00000000",
		ContainerColor:  "#0F1219",
		HighlightColor:  "#3D8BFD",
		DragThreshold:   10,
		SnapTolerance:   3,
		WindowWidth:     400,
		WindowHeight:    700,
	}
}

// Dir returns the per-user configuration directory
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// DefaultPath returns the location of the per-user config file
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the config at path on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	conf := Default()
	if _, err := toml.DecodeFile(path, conf); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return conf, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return conf, nil
}

// Save writes the config to path, creating parent directories
func Save(path string, conf *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(conf); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, buffer.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// InitIfMissing writes the defaults to path unless a file already exists.
// It reports whether a file was written.
func InitIfMissing(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to check config %s: %w", path, err)
	}
	if err := Save(path, Default()); err != nil {
		return false, err
	}
	return true, nil
}

// Validate checks value ranges and color syntax
func (c *Config) Validate() error {
	if c.DragThreshold <= 0 {
		return fmt.Errorf("drag_threshold must be positive, got %v", c.DragThreshold)
	}
	if c.SnapTolerance < 0 {
		return fmt.Errorf("snap_tolerance must not be negative, got %v", c.SnapTolerance)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size must be positive, got %vx%v", c.WindowWidth, c.WindowHeight)
	}
	colors := map[string]string{
		"text_color":       c.TextColor,
		"background_color": c.BackgroundColor,
		"container_color":  c.ContainerColor,
		"highlight_color":  c.HighlightColor,
	}
	for key, value := range colors {
		if _, err := ParseColor(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// ParseColor parses #RRGGBB or #RRGGBBAA
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	c := color.NRGBA{A: 0xff}

	var err error
	switch len(hex) {
	case 6:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 8:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		return color.NRGBA{}, fmt.Errorf("color %q must be #RRGGBB or #RRGGBBAA", s)
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return c, nil
}

// MustColor parses a color that already passed Validate
func MustColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
