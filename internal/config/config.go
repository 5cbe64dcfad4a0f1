// Package config loads the optional per-project envsense configuration
// file: default CLI preferences and vendor mapping overlays layered on
// top of the built-in agent/ide/ci tables.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/technicalpickles/envsense/internal/confidence"
	"github.com/technicalpickles/envsense/internal/mapping"
)

// DefaultConfigPath is the conventional per-repo config file name.
const DefaultConfigPath = ".envsense.yml"

// ConfigSchemaV1 is the only schema version config.yml currently uses.
const ConfigSchemaV1 = 1

// Config is the parsed, optional per-project configuration file. Every
// field is optional; a missing file yields a zero Config and no error.
type Config struct {
	SchemaVersion int           `yaml:"schemaVersion"`
	Defaults      Defaults      `yaml:"defaults"`
	VendorOverlay VendorOverlay `yaml:"vendorOverlay"`
}

// Defaults holds the `info` flag defaults a project can pin so CI
// scripts and local shells agree without repeating flags. `check` does
// not read them.
type Defaults struct {
	JSON   bool     `yaml:"json"`
	Fields []string `yaml:"fields"`
}

// VendorOverlay lets a project extend the built-in agent/ide/ci tables
// with custom, site-local vendor definitions without forking the
// binary. Entries are appended after the built-in table, so a built-in
// vendor of the same id still wins ties on confidence.
type VendorOverlay struct {
	Agents []VendorEntry `yaml:"agents"`
	IDEs   []VendorEntry `yaml:"ides"`
	CI     []VendorEntry `yaml:"ci"`
}

// VendorEntry is a simplified, YAML-friendly EnvMapping: one required
// indicator (NonEmpty match, or Exact match when EnvValue is set)
// naming the var that signals the vendor,
// plus the trait/context values to emit on a match.
type VendorEntry struct {
	ID         string            `yaml:"id"`
	EnvVar     string            `yaml:"envVar"`
	EnvValue   string            `yaml:"envValue,omitempty"`
	Confidence string            `yaml:"confidence"`
	Traits     map[string]string `yaml:"traits,omitempty"`
}

// Load reads path (defaulting to DefaultConfigPath) if it exists. A
// missing file is not an error: it returns a zero Config.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyOverlay converts a VendorOverlay's entries into mapping.EnvMapping
// values and returns tables with the overlay entries appended.
func ApplyOverlay(overlay VendorOverlay) (agents, ides, ci []mapping.EnvMapping) {
	agents = append(append([]mapping.EnvMapping{}, mapping.Agents...), toMappings(overlay.Agents, "agent")...)
	ides = append(append([]mapping.EnvMapping{}, mapping.IDEs...), toMappings(overlay.IDEs, "ide")...)
	ci = append(append([]mapping.EnvMapping{}, mapping.CI...), toMappings(overlay.CI, "ci")...)
	return agents, ides, ci
}

func toMappings(entries []VendorEntry, category string) []mapping.EnvMapping {
	out := make([]mapping.EnvMapping, 0, len(entries))
	for _, e := range entries {
		match := mapping.NonEmpty
		if e.EnvValue != "" {
			match = mapping.Exact(e.EnvValue)
		}
		traits := make(map[string]any, len(e.Traits))
		for k, v := range e.Traits {
			traits[k] = v
		}
		out = append(out, mapping.EnvMapping{
			ID: e.ID,
			Indicators: []mapping.EnvIndicator{
				{Key: e.EnvVar, Value: match, Required: true},
			},
			Contexts:   []string{category},
			Traits:     traits,
			Confidence: confidenceFromString(e.Confidence),
		})
	}
	return out
}

func confidenceFromString(s string) confidence.Level {
	switch s {
	case "low":
		return confidence.Low
	case "medium":
		return confidence.Medium
	default:
		return confidence.High
	}
}
