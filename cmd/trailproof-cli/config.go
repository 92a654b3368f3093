package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the trailproof-cli.yaml shape: which store a ledger opens
// and, optionally, the shared HMAC key and default tenant to configure
// it with. Grounded on the teacher's vouch-policy.yaml loader — same
// "absolute path else cwd-relative, read, unmarshal" shape, a narrower
// schema.
type Config struct {
	Store struct {
		Kind string `yaml:"kind"`
		Path string `yaml:"path"`
	} `yaml:"store"`
	Key           string `yaml:"key,omitempty"`
	DefaultTenant string `yaml:"default_tenant,omitempty"`
}

func loadConfig(path string) (*Config, error) {
	if !filepath.IsAbs(path) {
		wd, err := os.Getwd()
		if err == nil {
			path = filepath.Join(wd, path)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if cfg.Store.Kind == "" {
		cfg.Store.Kind = "jsonl"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "trailproof.jsonl"
	}
	return &cfg, nil
}
