package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"go-polycv/voice"
)

// DefaultCycleHz is the control rate of the host loop
const DefaultCycleHz = 1000

// InputConfig selects the MIDI inputs to open
type InputConfig struct {
	PortFilter string `json:"portFilter,omitempty"` // substring of the port name, empty = all
	Buffer     int    `json:"buffer,omitempty"`
}

// Preset is a named engine configuration
type Preset struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Settings voice.Settings `json:"settings"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette    string `json:"palette,omitempty"` // path to a GIMP palette
	LastPreset string `json:"lastPreset,omitempty"`
}

// Config is the main configuration structure. Only configuration is stored;
// voice state always starts from a reset.
type Config struct {
	ID      string             `json:"id"`
	Input   InputConfig        `json:"input"`
	CycleHz int                `json:"cycleHz"`
	Engine  voice.Settings     `json:"engine"`
	Dual    voice.DualSettings `json:"dual"`
	Presets []Preset           `json:"presets,omitempty"`
	UI      UIConfig           `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		ID:      uuid.New().String(),
		CycleHz: DefaultCycleHz,
		Engine:  voice.DefaultSettings(),
		Dual:    voice.DefaultDualSettings(),
	}
}

// NewPreset snapshots settings under a fresh ID
func NewPreset(name string, s voice.Settings) Preset {
	return Preset{
		ID:       uuid.New().String(),
		Name:     name,
		Settings: s,
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "home directory")
	}
	return filepath.Join(home, ".config", "go-polycv"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a config from path. Missing fields keep their defaults and
// out-of-range settings are clamped.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "read %s", path)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if _, err := uuid.Parse(c.ID); err != nil {
		c.ID = uuid.New().String()
	}
	if c.CycleHz <= 0 {
		c.CycleHz = DefaultCycleHz
	}
	c.Engine.Clamp()
	c.Dual.Clamp()
	for i := range c.Presets {
		if c.Presets[i].ID == "" {
			c.Presets[i].ID = uuid.New().String()
		}
		c.Presets[i].Settings.Clamp()
	}
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating the directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config directory")
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode config")
	}

	return errors.Wrapf(os.WriteFile(path, data, 0644), "write %s", path)
}

// FindPreset finds a preset by ID or name
func (c *Config) FindPreset(key string) *Preset {
	for i := range c.Presets {
		if c.Presets[i].ID == key || c.Presets[i].Name == key {
			return &c.Presets[i]
		}
	}
	return nil
}

// AddPreset adds or updates a preset, matched by name
func (c *Config) AddPreset(p Preset) {
	for i := range c.Presets {
		if c.Presets[i].Name == p.Name {
			p.ID = c.Presets[i].ID
			c.Presets[i] = p
			return
		}
	}
	c.Presets = append(c.Presets, p)
}
