package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"stubnest/models"
)

const DefaultConfigFile = "config.yaml"

// Load reads the route catalogue from path. The format is chosen by file
// extension: .yaml/.yml parse as YAML, anything else as JSON.
func Load(path string) (*models.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	var cfg models.Config
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("could not decode YAML config: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("could not decode JSON config: %w", err)
		}
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// applyDefaults fills in settings the document may omit.
func applyDefaults(cfg *models.Config) {
	if cfg.CORS != nil {
		if cfg.CORS.OptionsDefaultStatus == 0 {
			cfg.CORS.OptionsDefaultStatus = 204
		}
		if cfg.CORS.Enabled && cfg.CORS.Mode == "" {
			cfg.CORS.Mode = models.CORSModeHeaders
		}
	}
}
