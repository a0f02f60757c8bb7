package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// LogSettings configures the structured logger
type LogSettings struct {
	Level  string `yaml:"level" env:"ARPG_LOG_LEVEL"`
	Format string `yaml:"format" env:"ARPG_LOG_FORMAT"`
	File   string `yaml:"file" env:"ARPG_LOG_FILE"`
}

// Settings is the user-editable game configuration
type Settings struct {
	Log          LogSettings   `yaml:"log"`
	SavePath     string        `yaml:"save_path" env:"ARPG_SAVE_PATH"`
	AssetsDir    string        `yaml:"assets_dir" env:"ARPG_ASSETS_DIR"` // Empty uses the embedded definitions
	Seed         int64         `yaml:"seed" env:"ARPG_SEED"`             // 0 picks a random seed
	Fullscreen   bool          `yaml:"fullscreen" env:"ARPG_FULLSCREEN"`
	MasterVolume float64       `yaml:"master_volume" env:"ARPG_MASTER_VOLUME"`
	MapWidth     int           `yaml:"map_width"`
	MapHeight    int           `yaml:"map_height"`
	Input        InputSettings `yaml:"input"`
}

// DefaultSettings returns the settings used when no file exists
func DefaultSettings() Settings {
	return Settings{
		Log: LogSettings{
			Level:  "info",
			Format: "text",
			File:   "logs/game.log",
		},
		SavePath:     "saves.db",
		MasterVolume: 0.8,
		MapWidth:     48,
		MapHeight:    48,
		Input:        DefaultInputSettings(),
	}
}

// LoadSettings reads the YAML settings file over the defaults and then applies
// ARPG_* environment overrides. A missing file is not an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return s, fmt.Errorf("read settings: %w", err)
		default:
			dec := yaml.NewDecoder(bytes.NewReader(raw))
			dec.KnownFields(true)
			if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
				return s, fmt.Errorf("decode settings %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&s); err != nil {
		return s, fmt.Errorf("parse env: %w", err)
	}

	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate rejects values the game cannot run with
func (s *Settings) Validate() error {
	if s.MasterVolume < 0 || s.MasterVolume > 1 {
		return fmt.Errorf("master_volume %v out of range 0..1", s.MasterVolume)
	}
	if s.MapWidth < 16 || s.MapHeight < 16 {
		return fmt.Errorf("map size %dx%d is below 16x16", s.MapWidth, s.MapHeight)
	}
	if s.Input.MouseSensitivity < 0 {
		return fmt.Errorf("mouse_sensitivity must not be negative")
	}
	return nil
}

// Save writes the settings as YAML
func (s *Settings) Save(path string) error {
	raw, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return os.WriteFile(path, raw, 0o644)
}
