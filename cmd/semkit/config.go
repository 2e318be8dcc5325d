package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/semkit/semkit/semi"
)

// fileConfig carries the defaults a config file may set; flags given on
// the command line win over it.
type fileConfig struct {
	SemI               string `yaml:"semi"`
	Indent             bool   `yaml:"indent"`
	Properties         *bool  `yaml:"properties"`
	PredicateModifiers bool   `yaml:"predicate_modifiers"`
}

func loadConfig(path string) (*fileConfig, error) {
	cfg := &fileConfig{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// loadSemI reads a grammar interface from either the sectioned .smi
// format or its compiled YAML form, by extension.
func loadSemI(path string) (*semi.SemI, error) {
	if path == "" {
		return nil, nil
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read semi: %w", err)
		}
		return semi.DecodeYAML(data)
	}
	return semi.Load(path)
}
