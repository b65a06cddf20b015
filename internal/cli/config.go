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

package cli

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jeremyhahn/go-curvetoken/internal/config"
	"github.com/jeremyhahn/go-curvetoken/pkg/keypair"
	"github.com/jeremyhahn/go-curvetoken/pkg/types"
)

// Config holds global CLI configuration
type Config struct {
	// ConfigFile is the path to the configuration file
	ConfigFile string

	// OutputFormat controls output formatting (text, json)
	OutputFormat string

	// Verbose enables verbose logging
	Verbose bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		OutputFormat: "text",
		Verbose:      false,
	}
}

// LoadFile loads the configuration file. The explicit --config path
// wins; otherwise $HOME/.curvetoken.yaml is used when present, and
// defaults apply when neither exists.
func (c *Config) LoadFile() (*config.Config, error) {
	path := c.ConfigFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			candidate := filepath.Join(home, ".curvetoken.yaml")
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
			}
		}
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// parseCurveFlag converts the --curve flag value to a types.Curve
func parseCurveFlag(name string) (types.Curve, error) {
	curve, err := types.ParseCurve(name)
	if err != nil {
		return "", fmt.Errorf("unknown curve %q (use ed25519 or p256)", name)
	}
	return curve, nil
}

// readPrivateKey loads a hex-encoded private key file and reconstructs
// the key pair for the given curve
func readPrivateKey(curve types.Curve, path string) (*keypair.KeyPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	priv, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("key file is not valid hex: %w", err)
	}
	key, err := keypair.FromBytes(curve, priv)
	if err != nil {
		return nil, fmt.Errorf("failed to load key: %w", err)
	}
	return key, nil
}

// writePrivateKey stores a private key as hex with owner-only
// permissions
func writePrivateKey(key *keypair.KeyPair, path string) error {
	encoded := hex.EncodeToString(key.Bytes()) + "\n"
	if err := os.WriteFile(path, []byte(encoded), 0o600); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}

// readMessage returns the message to sign or verify: the literal
// argument, or stdin when the argument is "-"
func readMessage(arg string) ([]byte, error) {
	if arg != "-" {
		return []byte(arg), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}

// readSecret loads an HMAC secret from a file
func readSecret(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret file: %w", err)
	}
	secret := []byte(strings.TrimSpace(string(data)))
	if len(secret) == 0 {
		return nil, fmt.Errorf("secret file %s is empty", path)
	}
	return secret, nil
}
