package config

import (
	"fmt"
	"os"

	"gastroguide/model"

	"gopkg.in/yaml.v3"
)

// LoadIntents parses the intent rules file. A missing file yields an empty
// config so the built-in keyword tables apply.
func LoadIntents(path string) (*model.IntentConfig, error) {
	if path == "" {
		return &model.IntentConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &model.IntentConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read intents file: %w", err)
	}

	var cfg model.IntentConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse intents file: %w", err)
	}

	seen := make(map[model.Intent]bool, len(cfg.Intents))
	for _, def := range cfg.Intents {
		if def.ID == "" {
			return nil, fmt.Errorf("intents file: entry without id")
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("intents file: duplicate intent %q", def.ID)
		}
		seen[def.ID] = true
		if def.ID == model.IntentGeneral && !def.IsEnabled() {
			return nil, fmt.Errorf("intents file: %q cannot be disabled", model.IntentGeneral)
		}
	}
	return &cfg, nil
}
