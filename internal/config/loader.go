package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDungeon loads the dungeon configuration.
// Search order: customPath -> ~/.arcade/configs/dungeon.yaml -> ./configs/dungeon.yaml -> embedded default
func LoadDungeon(customPath string) (DungeonConfig, error) {
	cfg, err := load("dungeon", customPath, defaultDungeonYAML, DefaultDungeonConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, ValidateDungeon(cfg)
}

// LoadTrackout loads the trackout configuration.
// Search order: customPath -> ~/.arcade/configs/trackout.yaml -> ./configs/trackout.yaml -> embedded default
func LoadTrackout(customPath string) (TrackoutConfig, error) {
	cfg, err := load("trackout", customPath, defaultTrackoutYAML, DefaultTrackoutConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, ValidateTrackout(cfg)
}

// load resolves a config file for gameID. Each candidate is decoded on top of
// the hard-coded defaults so partial files only override what they name.
func load[T any](gameID, customPath string, embedded []byte, defaults func() T) (T, error) {
	filename := gameID + ".yaml"

	if customPath != "" {
		cfg := defaults()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{filepath.Join("configs", filename)}
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg := defaults()
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	cfg := defaults()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return defaults(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ValidateDungeon rejects values the game cannot run with.
func ValidateDungeon(cfg DungeonConfig) error {
	switch {
	case cfg.Swing.DurationMS <= 0:
		return fmt.Errorf("config: swing.duration_ms must be positive, got %d", cfg.Swing.DurationMS)
	case cfg.View.CellWidthPx <= 0 || cfg.View.CellHeightPx <= 0:
		return fmt.Errorf("config: view cell size must be positive")
	case cfg.Pick.RadiusPx < 0:
		return fmt.Errorf("config: pick.radius_px must not be negative")
	case cfg.Input.HoldMS < 0:
		return fmt.Errorf("config: input.hold_ms must not be negative")
	}
	return nil
}

// ValidateTrackout rejects values the game cannot run with.
func ValidateTrackout(cfg TrackoutConfig) error {
	switch {
	case cfg.Vehicle.Mass <= 0:
		return fmt.Errorf("config: vehicle.mass must be positive, got %g", cfg.Vehicle.Mass)
	case cfg.Vehicle.Width <= 0 || cfg.Vehicle.Length <= 0:
		return fmt.Errorf("config: vehicle size must be positive")
	case cfg.Camera.CellsPerUnit <= 0:
		return fmt.Errorf("config: camera.cells_per_unit must be positive")
	case cfg.Grid.Step <= 0:
		return fmt.Errorf("config: grid.step must be positive")
	case cfg.Input.HoldMS < 0:
		return fmt.Errorf("config: input.hold_ms must not be negative")
	}
	return nil
}
