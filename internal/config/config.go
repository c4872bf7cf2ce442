// Package config loads askbox settings.
//
// Settings are layered, later layers winning:
//   - built-in defaults
//   - a TOML file (default $XDG_CONFIG_HOME/askbox/config.toml)
//   - ASKBOX_* environment variables
//
// Command line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "ASKBOX_"

// Config is the complete askbox configuration
type Config struct {
	Server ServerConfig `toml:"server" envPrefix:"SERVER_"`
	Widget WidgetConfig `toml:"widget" envPrefix:"WIDGET_"`
	Log    LogConfig    `toml:"log" envPrefix:"LOG_"`
}

// ServerConfig points at the answer service
type ServerConfig struct {
	// URL is the base URL; requests go to URL + "/ask"
	URL string `toml:"url" env:"URL"`
}

// WidgetConfig tunes the chat panel
type WidgetConfig struct {
	// TypingDelay is the pause between sending and showing the placeholder
	TypingDelay time.Duration `toml:"typing_delay" env:"TYPING_DELAY"`
	// NarrowWidth is the terminal width below which Enter inserts a newline
	NarrowWidth int `toml:"narrow_width" env:"NARROW_WIDTH"`
	// MaxInputHeight caps auto-grow of the input, in lines
	MaxInputHeight int    `toml:"max_input_height" env:"MAX_INPUT_HEIGHT"`
	StartOpen      bool   `toml:"start_open" env:"START_OPEN"`
	Title          string `toml:"title" env:"TITLE"`
	// Mouse captures the mouse for wheel scrolling. While captured, most
	// terminals only select text with shift held.
	Mouse          bool   `toml:"mouse" env:"MOUSE"`
}

// LogConfig controls the file logger. The terminal belongs to the UI, so an
// empty File disables logging.
type LogConfig struct {
	File  string `toml:"file" env:"FILE"`
	Level string `toml:"level" env:"LEVEL"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL: "http://localhost:5000",
		},
		Widget: WidgetConfig{
			TypingDelay:    600 * time.Millisecond,
			NarrowWidth:    80,
			MaxInputHeight: 6,
			Title:          "Chatbot",
			Mouse:          true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the config file location used when none is given
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "askbox", "config.toml")
}

// Load builds a Config from defaults, the file at path and the environment.
// With an empty path the default location is tried and may be absent; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		if err := LoadTOML(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML decodes the TOML file at path over cfg
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("config: %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config: %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("config: server.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: server.url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("config: server.url: missing host")
	}

	if c.Widget.TypingDelay < 0 {
		return fmt.Errorf("config: widget.typing_delay: must not be negative, got %s", c.Widget.TypingDelay)
	}
	if c.Widget.NarrowWidth < 0 {
		return fmt.Errorf("config: widget.narrow_width: must not be negative, got %d", c.Widget.NarrowWidth)
	}
	if c.Widget.MaxInputHeight < 1 {
		return fmt.Errorf("config: widget.max_input_height: must be at least 1, got %d", c.Widget.MaxInputHeight)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	return nil
}
