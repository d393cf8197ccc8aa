package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadStack loads configuration for the fixed-camera stacking game.
// Search order: customPath -> ~/.tower/configs/stack.yaml -> ./configs/stack.yaml -> embedded default
func LoadStack(customPath string) (StackConfig, error) {
	return load(customPath, "stack.yaml", defaultStackYAML, DefaultStackConfig)
}

// LoadStackCamera loads configuration for the camera-following stacking game.
// Search order: customPath -> ~/.tower/configs/stack_camera.yaml -> ./configs/stack_camera.yaml -> embedded default
func LoadStackCamera(customPath string) (StackConfig, error) {
	return load(customPath, "stack_camera.yaml", defaultStackCameraYAML, DefaultStackCameraConfig)
}

// LoadCollector loads collector configuration.
// Search order: customPath -> ~/.tower/configs/collector.yaml -> ./configs/collector.yaml -> embedded default
func LoadCollector(customPath string) (CollectorConfig, error) {
	return load(customPath, "collector.yaml", defaultCollectorYAML, DefaultCollectorConfig)
}

// load walks the config search order. Files are decoded on top of the
// hardcoded defaults so a partial YAML only overrides what it names.
func load[T any](customPath, filename string, embedded []byte, fallback func() T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := fallback()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if cfg, ok := decode(userCfgPath, fallback); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := decode(filepath.Join("configs", filename), fallback); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg := fallback()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func decode[T any](path string, fallback func() T) (T, bool) {
	cfg := fallback()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tower", "configs", filename)
}

// ApplyStackPreset modifies a stacking config based on a difficulty preset.
func ApplyStackPreset(cfg *StackConfig, preset DifficultyPreset) {
	applyDifficulty(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Descent.SlowSeconds *= 1.25
	case DifficultyHard:
		cfg.Descent.SlowSeconds *= 0.75
		cfg.Board.BaseWidthRatio *= 0.8
	}
}

// ApplyCollectorPreset modifies a collector config based on a difficulty preset.
func ApplyCollectorPreset(cfg *CollectorConfig, preset DifficultyPreset) {
	applyDifficulty(&cfg.Difficulty, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.Width += 2
	case DifficultyHard:
		cfg.Player.Width -= 2
		if cfg.Player.Width < 3 {
			cfg.Player.Width = 3
		}
	}
}

func applyDifficulty(d *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		d.Enabled = false
	} else {
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
}
