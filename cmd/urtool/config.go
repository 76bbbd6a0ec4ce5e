// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/hrissan/ur/constants"
)

// config holds settings shared by all subcommands. Values come from defaults,
// then the config file, then flags given explicitly on the command line.
type config struct {
	LogLevel         string
	Type             string
	MaxFragment      int
	Redundancy       float64
	Compress         string
	Style            string
	MaxSequenceCount int // 0 means the decoder grows without bound
}

func defaultConfig() config {
	return config{
		LogLevel:    "info",
		Type:        "bytes",
		MaxFragment: constants.DefaultMaxFragmentLength,
		Redundancy:  2,
		Compress:    "none",
		Style:       "minimal",
	}
}

// fileConfig fields are pointers so absent keys keep their defaults.
type fileConfig struct {
	LogLevel         *string  `toml:"log_level" yaml:"log_level"`
	Type             *string  `toml:"type" yaml:"type"`
	MaxFragment      *int     `toml:"max_fragment" yaml:"max_fragment"`
	Redundancy       *float64 `toml:"redundancy" yaml:"redundancy"`
	Compress         *string  `toml:"compress" yaml:"compress"`
	Style            *string  `toml:"style" yaml:"style"`
	MaxSequenceCount *int     `toml:"max_sequence_count" yaml:"max_sequence_count"`
}

// loadConfig reads TOML, or YAML for .yaml and .yml files. Unknown keys are errors.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return config{}, fmt.Errorf("load config: %w", err)
		}
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil && len(bytes.TrimSpace(data)) != 0 {
			return config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	default:
		meta, err := toml.DecodeFile(path, &raw)
		if err != nil {
			return config{}, fmt.Errorf("load config: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) != 0 {
			return config{}, fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
		}
	}

	if raw.LogLevel != nil {
		cfg.LogLevel = strings.TrimSpace(*raw.LogLevel)
	}
	if raw.Type != nil {
		cfg.Type = strings.TrimSpace(*raw.Type)
	}
	if raw.MaxFragment != nil {
		cfg.MaxFragment = *raw.MaxFragment
	}
	if raw.Redundancy != nil {
		cfg.Redundancy = *raw.Redundancy
	}
	if raw.Compress != nil {
		cfg.Compress = strings.TrimSpace(*raw.Compress)
	}
	if raw.Style != nil {
		cfg.Style = strings.TrimSpace(*raw.Style)
	}
	if raw.MaxSequenceCount != nil {
		cfg.MaxSequenceCount = *raw.MaxSequenceCount
	}
	return cfg, cfg.validate()
}

func (cfg *config) validate() error {
	if cfg.MaxFragment <= 0 {
		return fmt.Errorf("max_fragment (%d) should be positive", cfg.MaxFragment)
	}
	if cfg.Redundancy < 1 {
		return fmt.Errorf("redundancy (%v) should be at least 1", cfg.Redundancy)
	}
	if cfg.MaxSequenceCount < 0 {
		return fmt.Errorf("max_sequence_count (%d) should not be negative", cfg.MaxSequenceCount)
	}
	return nil
}
