package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlConfig struct {
	Origin        string   `yaml:"origin"`
	MinConfidence *float64 `yaml:"min_confidence"`
	Level         string   `yaml:"level"`
	Format        string   `yaml:"format"`
	LayerName     string   `yaml:"layer_name"`
	Scale         *float64 `yaml:"scale"`
}

// loadConfig reads a YAML file with default command options
func loadConfig(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &yc, nil
}

// applyConfig copies the config values into the options whose flags were not
// set on the command line
func applyConfig(cfg *yamlConfig, changed func(name string) bool) {
	setString := func(name string, dst *string, v string) {
		if v != "" && !changed(name) {
			*dst = v
		}
	}
	setFloat := func(name string, dst *float64, v *float64) {
		if v != nil && !changed(name) {
			*dst = *v
		}
	}

	setString("origin", &input.origin, cfg.Origin)
	setString("level", &input.level, cfg.Level)
	setFloat("min-confidence", &input.minConfidence, cfg.MinConfidence)
	setString("format", &exportFormat, cfg.Format)
	setString("layer-name", &pdfOpts.layerName, cfg.LayerName)
	setFloat("scale", &pdfOpts.scale, cfg.Scale)
}
