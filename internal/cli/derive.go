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
	"os"

	"github.com/jeremyhahn/go-curvetoken/pkg/crypto/ecdh"
	"github.com/spf13/cobra"
)

// deriveCmd derives a shared secret with a peer public key
var deriveCmd = &cobra.Command{
	Use:   "derive <peer-public-key>",
	Short: "Derive a shared secret",
	Long: `Derive a Diffie-Hellman shared secret from a stored private key and a
hex-encoded peer public key. With --info the raw secret is expanded
through HKDF-SHA256 into a symmetric key. Output is hex encoded.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)

		curveName, _ := cmd.Flags().GetString("curve")
		keyFile, _ := cmd.Flags().GetString("key")
		info, _ := cmd.Flags().GetString("info")
		length, _ := cmd.Flags().GetInt("length")

		curve, err := parseCurveFlag(curveName)
		if err != nil {
			handleError(err)
			return
		}

		peerKey, err := hex.DecodeString(args[0])
		if err != nil {
			handleError(fmt.Errorf("peer public key is not valid hex: %w", err))
			return
		}

		key, err := readPrivateKey(curve, keyFile)
		if err != nil {
			handleError(err)
			return
		}

		agreement, err := ecdh.New(curve)
		if err != nil {
			handleError(err)
			return
		}

		dhKey, err := agreement.NewKeyFromBytes(key.Bytes())
		if err != nil {
			handleError(fmt.Errorf("failed to load key: %w", err))
			return
		}

		printVerbose("Deriving %s shared secret", curve)

		secret, err := agreement.DeriveSharedSecret(dhKey, peerKey)
		if err != nil {
			handleError(fmt.Errorf("failed to derive shared secret: %w", err))
			return
		}
		defer ecdh.Zeroize(secret)

		if info == "" {
			if err := printer.PrintSharedSecret(hex.EncodeToString(secret), false); err != nil {
				handleError(err)
			}
			return
		}

		derived, err := ecdh.DeriveKey(secret, nil, []byte(info), length)
		if err != nil {
			handleError(fmt.Errorf("failed to derive key: %w", err))
			return
		}

		if err := printer.PrintSharedSecret(hex.EncodeToString(derived), true); err != nil {
			handleError(err)
		}
	},
}

func init() {
	deriveCmd.Flags().String("curve", "ed25519", "curve (ed25519, p256)")
	deriveCmd.Flags().String("key", "", "private key file")
	deriveCmd.Flags().String("info", "", "HKDF context info (enables key derivation)")
	deriveCmd.Flags().Int("length", 32, "derived key length in bytes")
	_ = deriveCmd.MarkFlagRequired("key")
}
