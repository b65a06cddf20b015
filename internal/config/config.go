// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-curvetoken.
//
// go-curvetoken is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package config loads the CLI configuration file: token defaults
// (issuer, audience, lifetime) and the decode allow-list.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jeremyhahn/go-curvetoken/pkg/types"
)

// Config represents the complete curvetoken configuration.
type Config struct {
	Token   TokenConfig   `yaml:"token"`
	Logging LoggingConfig `yaml:"logging"`
}

// TokenConfig contains token issuance and validation defaults.
type TokenConfig struct {
	// Issuer is the default iss claim for issued tokens and the
	// expected issuer during decode.
	Issuer string `yaml:"issuer"`

	// Audience is the default aud claim for issued tokens.
	Audience []string `yaml:"audience"`

	// TTL is the default token lifetime.
	TTL time.Duration `yaml:"ttl"`

	// ClockSkew is the tolerance applied to exp and nbf during decode.
	ClockSkew time.Duration `yaml:"clock_skew"`

	// AllowedAlgorithms is the decode allow-list.
	AllowedAlgorithms []string `yaml:"allowed_algorithms"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Token: TokenConfig{
			Issuer:            "curvetoken",
			TTL:               time.Hour,
			ClockSkew:         time.Minute,
			AllowedAlgorithms: []string{"ES256", "EdDSA"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML configuration file, filling unset fields with
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if c.Token.TTL < 0 {
		return fmt.Errorf("config: token ttl must not be negative")
	}
	if c.Token.ClockSkew < 0 {
		return fmt.Errorf("config: clock skew must not be negative")
	}
	if len(c.Token.AllowedAlgorithms) == 0 {
		return fmt.Errorf("config: allowed_algorithms must not be empty")
	}
	for _, name := range c.Token.AllowedAlgorithms {
		if _, err := types.ParseAlgorithm(name); err != nil {
			return fmt.Errorf("config: unknown algorithm %q in allowed_algorithms", name)
		}
	}
	return nil
}

// Algorithms returns the parsed decode allow-list. Unknown names are
// reported rather than dropped, so the method is safe on configs that
// never passed Validate.
func (c *Config) Algorithms() ([]types.Algorithm, error) {
	out := make([]types.Algorithm, 0, len(c.Token.AllowedAlgorithms))
	for _, name := range c.Token.AllowedAlgorithms {
		alg, err := types.ParseAlgorithm(name)
		if err != nil {
			return nil, fmt.Errorf("config: unknown algorithm %q in allowed_algorithms", name)
		}
		out = append(out, alg)
	}
	return out, nil
}
