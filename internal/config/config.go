// Package config loads the ember system configuration from YAML.
//
// The config carries the engine's construction-time state (owner, initial
// oracle, pause flag, per-cycle cap), the audit database path, an
// optional CUE policy file overriding the multiplier tables, and seed
// balances for the in-memory token ledger used by the CLI.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultDatabase is the audit ledger path used when the config omits it.
const DefaultDatabase = "ember.db"

// Config is the deserialized system configuration.
type Config struct {
	// Owner is the deploying identity. Immutable once the engine is
	// constructed; required.
	Owner string `yaml:"owner"`

	// Oracle is the initial oracle identity. May be empty, in which case
	// nobody can run dynamic cycles until the owner sets one.
	Oracle string `yaml:"oracle,omitempty"`

	// Paused is the initial pause flag.
	Paused bool `yaml:"paused,omitempty"`

	// MaxBurnPerCycle is the initial per-cycle ceiling. Zero means "use
	// the engine default".
	MaxBurnPerCycle uint64 `yaml:"max_burn_per_cycle,omitempty"`

	// Database is the audit ledger SQLite path.
	Database string `yaml:"database,omitempty"`

	// Policy optionally points at a CUE file replacing the default
	// multiplier tables. Relative paths resolve against the config file
	// location.
	Policy string `yaml:"policy,omitempty"`

	// Balances seeds the in-memory token ledger (account -> balance).
	// Only consulted by the CLI; embedded deployments supply their own
	// ledger.
	Balances map[string]uint64 `yaml:"balances,omitempty"`

	// rawDatabase and rawPolicy keep the paths exactly as written in the
	// file, so Save round-trips them instead of the resolved versions.
	rawDatabase string
	rawPolicy   string
}

// Load reads and validates a config file. Relative Database and Policy
// paths are rewritten relative to the config file's directory, so a
// config can be invoked from anywhere.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cfg.rawDatabase = cfg.Database
	cfg.rawPolicy = cfg.Policy

	base := filepath.Dir(path)
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if !filepath.IsAbs(cfg.Database) {
		cfg.Database = filepath.Join(base, cfg.Database)
	}
	if cfg.Policy != "" && !filepath.IsAbs(cfg.Policy) {
		cfg.Policy = filepath.Join(base, cfg.Policy)
	}

	return &cfg, nil
}

// Save writes the config back to path as YAML. Used by the CLI's admin
// commands so owner mutations survive across one-shot invocations.
func (c *Config) Save(path string) error {
	out := *c
	out.Database = c.rawDatabase
	out.Policy = c.rawPolicy
	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks config invariants that YAML decoding cannot express.
func (c *Config) Validate() error {
	if c.Owner == "" {
		return errors.New("owner is required")
	}
	return nil
}
