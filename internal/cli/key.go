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
	"encoding/json"
	"fmt"
	"os"

	"github.com/jeremyhahn/go-curvetoken/pkg/crypto/rand"
	"github.com/jeremyhahn/go-curvetoken/pkg/encoding/jwk"
	"github.com/jeremyhahn/go-curvetoken/pkg/keypair"
	"github.com/spf13/cobra"
)

// keyCmd represents the key command
var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage elliptic curve keys",
	Long:  `Generate keys and inspect their public components`,
}

// keyGenerateCmd generates a new key pair
var keyGenerateCmd = &cobra.Command{
	Use:   "generate <key-file>",
	Short: "Generate a new key pair",
	Long:  `Generate a new key pair for the given curve and write the private key to a file`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		keyFile := args[0]
		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)

		curveName, _ := cmd.Flags().GetString("curve")
		curve, err := parseCurveFlag(curveName)
		if err != nil {
			handleError(err)
			return
		}

		printVerbose("Generating %s key pair", curve)

		resolver, err := rand.NewResolver(&rand.Config{Mode: rand.ModeAuto})
		if err != nil {
			handleError(fmt.Errorf("failed to initialize entropy source: %w", err))
			return
		}
		defer func() { _ = resolver.Close() }()

		key, err := keypair.Generate(curve, resolver)
		if err != nil {
			handleError(fmt.Errorf("failed to generate key: %w", err))
			return
		}

		if err := writePrivateKey(key, keyFile); err != nil {
			handleError(err)
			return
		}

		if err := printer.PrintKeyInfo(string(curve), hex.EncodeToString(key.Public()), keyFile); err != nil {
			handleError(err)
		}
	},
}

// keyPublicCmd prints the public key for a stored private key
var keyPublicCmd = &cobra.Command{
	Use:   "public <key-file>",
	Short: "Print the public key",
	Long:  `Derive and print the public key from a stored private key file`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		keyFile := args[0]
		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)

		curveName, _ := cmd.Flags().GetString("curve")
		curve, err := parseCurveFlag(curveName)
		if err != nil {
			handleError(err)
			return
		}

		key, err := readPrivateKey(curve, keyFile)
		if err != nil {
			handleError(err)
			return
		}

		if err := printer.PrintKeyInfo(string(curve), hex.EncodeToString(key.Public()), ""); err != nil {
			handleError(err)
		}
	},
}

// keyJWKCmd prints the public key as a JSON Web Key
var keyJWKCmd = &cobra.Command{
	Use:   "jwk <key-file>",
	Short: "Print the public key as a JWK",
	Long: `Derive the public key from a stored private key file and print it in
JSON Web Key format with an RFC 7638 thumbprint as the kid`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		keyFile := args[0]

		curveName, _ := cmd.Flags().GetString("curve")
		curve, err := parseCurveFlag(curveName)
		if err != nil {
			handleError(err)
			return
		}

		key, err := readPrivateKey(curve, keyFile)
		if err != nil {
			handleError(err)
			return
		}

		j, err := jwk.FromPublicKey(curve, key.Public())
		if err != nil {
			handleError(err)
			return
		}
		if j.Kid, err = j.Thumbprint(); err != nil {
			handleError(err)
			return
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(j); err != nil {
			handleError(err)
		}
	},
}

func init() {
	keyGenerateCmd.Flags().String("curve", "ed25519", "curve (ed25519, p256)")
	keyPublicCmd.Flags().String("curve", "ed25519", "curve (ed25519, p256)")
	keyJWKCmd.Flags().String("curve", "ed25519", "curve (ed25519, p256)")

	keyCmd.AddCommand(keyGenerateCmd)
	keyCmd.AddCommand(keyPublicCmd)
	keyCmd.AddCommand(keyJWKCmd)
}
