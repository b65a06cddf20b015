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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Token.TTL != time.Hour {
		t.Errorf("default ttl = %v, want 1h", cfg.Token.TTL)
	}
	algs, err := cfg.Algorithms()
	if err != nil {
		t.Fatalf("Algorithms: %v", err)
	}
	if len(algs) != 2 {
		t.Errorf("default algorithms = %v", algs)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
token:
  issuer: my-service
  audience: [app-a, app-b]
  ttl: 30m
  clock_skew: 2m
  allowed_algorithms: [HS256, EdDSA]
logging:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token.Issuer != "my-service" {
		t.Errorf("issuer = %q", cfg.Token.Issuer)
	}
	if cfg.Token.TTL != 30*time.Minute {
		t.Errorf("ttl = %v", cfg.Token.TTL)
	}
	if len(cfg.Token.Audience) != 2 {
		t.Errorf("audience = %v", cfg.Token.Audience)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
	algs, err := cfg.Algorithms()
	if err != nil {
		t.Fatalf("Algorithms: %v", err)
	}
	if len(algs) != 2 {
		t.Errorf("algorithms = %v", algs)
	}
}

func TestAlgorithmsReportsUnknownNames(t *testing.T) {
	// A hand-built config never passes through Validate; Algorithms must
	// still surface bad entries instead of dropping them.
	cfg := Default()
	cfg.Token.AllowedAlgorithms = []string{"ES256", "RS256"}
	if _, err := cfg.Algorithms(); err == nil {
		t.Error("unknown algorithm did not error")
	}

	cfg.Token.AllowedAlgorithms = []string{"ES256", "EdDSA"}
	algs, err := cfg.Algorithms()
	if err != nil {
		t.Fatalf("Algorithms: %v", err)
	}
	if len(algs) != 2 {
		t.Errorf("algorithms = %v", algs)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
token:
  issuer: partial
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token.Issuer != "partial" {
		t.Errorf("issuer = %q", cfg.Token.Issuer)
	}
	if cfg.Token.TTL != time.Hour {
		t.Errorf("ttl = %v, want default 1h", cfg.Token.TTL)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file did not error")
	}

	badAlg := writeConfig(t, `
token:
  allowed_algorithms: [RS256]
`)
	if _, err := Load(badAlg); err == nil {
		t.Error("unknown algorithm did not error")
	}

	notYAML := writeConfig(t, "{{{")
	if _, err := Load(notYAML); err == nil {
		t.Error("invalid yaml did not error")
	}
}
