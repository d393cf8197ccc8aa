package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Marshal renders a resolved config as YAML so it can be stored next to
// a run and decoded again with Parse.
func Marshal(cfg any) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("config: cannot encode: %w", err)
	}
	return string(data), nil
}

// Parse decodes YAML on top of fallback defaults, the same way config
// files are read.
func Parse[T any](data string, fallback func() T) (T, error) {
	cfg := fallback()
	if err := yaml.Unmarshal([]byte(data), &cfg); err != nil {
		return fallback(), fmt.Errorf("config: cannot parse: %w", err)
	}
	return cfg, nil
}
