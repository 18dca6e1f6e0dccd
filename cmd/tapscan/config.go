package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig is the tapscan.yaml layout.
type fileConfig struct {
	Browser browserConfig `yaml:"browser"`
	DB      string        `yaml:"db"`
	URLs    []string      `yaml:"urls"`
}

type browserConfig struct {
	Remote          string        `yaml:"remote"`
	NoStealth       bool          `yaml:"no_stealth"`
	NavigateTimeout time.Duration `yaml:"navigate_timeout"`
}

func loadConfigFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}
