package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the editor configuration. Every field has a default
// matching the built-in constants, so an absent or partial file is
// always usable.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Snap     SnapConfig     `toml:"snap"`
	Handles  HandlesConfig  `toml:"handles"`
	History  HistoryConfig  `toml:"history"`
	Autosave AutosaveConfig `toml:"autosave"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

type SnapConfig struct {
	Enabled bool `toml:"enabled"`
	// EnterDistance is how far apart two faces may be and still snap.
	EnterDistance float32 `toml:"enter_distance"`
	// OverlapAllowance is how deep two faces may interpenetrate and
	// still snap.
	OverlapAllowance float32 `toml:"overlap_allowance"`
}

type HandlesConfig struct {
	// MinExtent is the smallest box extent a resize drag may produce,
	// in scene units.
	MinExtent float32 `toml:"min_extent"`
	// PickRadius is the world-space radius around a handle within
	// which a pointer ray grabs it.
	PickRadius float32 `toml:"pick_radius"`
}

type HistoryConfig struct {
	Capacity int `toml:"capacity"`
}

type AutosaveConfig struct {
	Enabled bool `toml:"enabled"`
	// DebounceMS coalesces save requests arriving within this window.
	DebounceMS int    `toml:"debounce_ms"`
	Path       string `toml:"path"`
	// WatchFile reloads the scene when the file changes on disk.
	WatchFile bool `toml:"watch_file"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Maquette",
			Width:  1280,
			Height: 720,
		},
		Snap: SnapConfig{
			Enabled:          true,
			EnterDistance:    0.3,
			OverlapAllowance: 0.06,
		},
		Handles: HandlesConfig{
			MinExtent:  0.1,
			PickRadius: 0.25,
		},
		History: HistoryConfig{
			Capacity: 64,
		},
		Autosave: AutosaveConfig{
			Enabled:    true,
			DebounceMS: 750,
			Path:       "scene.json",
			WatchFile:  false,
		},
	}
}

// Load reads a TOML config file on top of the defaults. A missing file
// is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Snap.EnterDistance < 0 {
		return fmt.Errorf("snap.enter_distance must not be negative")
	}
	if c.Snap.OverlapAllowance < 0 {
		return fmt.Errorf("snap.overlap_allowance must not be negative")
	}
	if c.Handles.MinExtent <= 0 {
		return fmt.Errorf("handles.min_extent must be positive")
	}
	if c.History.Capacity < 1 {
		return fmt.Errorf("history.capacity must be at least 1")
	}
	return nil
}
