// Package config loads treeline configuration from a TOML file and
// watches it for live reload.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/treeline-io/treeline/internal/command"
	"github.com/treeline-io/treeline/internal/input/key"
	"github.com/treeline-io/treeline/internal/input/mouse"
)

// Config is the full application configuration.
type Config struct {
	Log   LogConfig   `toml:"log"`
	Mouse MouseConfig `toml:"mouse"`
	Input InputConfig `toml:"input"`
	Keys  KeysConfig  `toml:"keys"`
}

// LogConfig configures logging output.
type LogConfig struct {
	// Level is the minimum level: debug, info, warn, or error.
	Level string `toml:"level"`

	// File is the log destination. Empty means stderr.
	File string `toml:"file"`
}

// MouseConfig configures click detection.
type MouseConfig struct {
	// DoubleClickMS is the maximum interval between presses of a
	// double click, in milliseconds.
	DoubleClickMS int `toml:"double_click_ms"`

	// DoubleClickDistance is the maximum Manhattan distance between
	// the presses of a double click.
	DoubleClickDistance int `toml:"double_click_distance"`
}

// InputConfig configures event delivery.
type InputConfig struct {
	// QueueSize is the input event channel buffer size.
	QueueSize int `toml:"queue_size"`
}

// KeysConfig holds rebindable control keys as key specifications,
// e.g. "Ctrl+Q", "F5", "Alt+Enter".
type KeysConfig struct {
	Quit    string `toml:"quit"`
	Refresh string `toml:"refresh"`
	AltOpen string `toml:"alt_open"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Mouse: MouseConfig{
			DoubleClickMS:       400,
			DoubleClickDistance: 4,
		},
		Input: InputConfig{
			QueueSize: 100,
		},
		Keys: KeysConfig{
			Quit:    "Ctrl+Q",
			Refresh: "F5",
			AltOpen: "Alt+Enter",
		},
	}
}

// Load reads configuration from path, layered over the defaults.
// A missing file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", c.Log.Level)
	}

	if c.Mouse.DoubleClickMS <= 0 {
		return fmt.Errorf("mouse.double_click_ms must be positive, got %d", c.Mouse.DoubleClickMS)
	}
	if c.Mouse.DoubleClickDistance < 0 {
		return fmt.Errorf("mouse.double_click_distance must not be negative, got %d", c.Mouse.DoubleClickDistance)
	}
	if c.Input.QueueSize <= 0 {
		return fmt.Errorf("input.queue_size must be positive, got %d", c.Input.QueueSize)
	}

	if _, err := c.Bindings(); err != nil {
		return err
	}

	return nil
}

// Bindings resolves the configured key specifications into control key
// bindings for the command state.
func (c *Config) Bindings() (command.Bindings, error) {
	b := command.DefaultBindings()

	specs := []struct {
		name   string
		spec   string
		target *key.Event
	}{
		{"keys.quit", c.Keys.Quit, &b.Quit},
		{"keys.refresh", c.Keys.Refresh, &b.Refresh},
		{"keys.alt_open", c.Keys.AltOpen, &b.AltOpen},
	}

	for _, s := range specs {
		if s.spec == "" {
			continue
		}
		ev, err := key.Parse(s.spec)
		if err != nil {
			return command.Bindings{}, fmt.Errorf("%s: %w", s.name, err)
		}
		*s.target = ev
	}

	return b, nil
}

// MouseTracker resolves the click detection settings.
func (c *Config) MouseTracker() mouse.Config {
	return mouse.Config{
		DoubleClickTime:     time.Duration(c.Mouse.DoubleClickMS) * time.Millisecond,
		DoubleClickDistance: c.Mouse.DoubleClickDistance,
	}
}
