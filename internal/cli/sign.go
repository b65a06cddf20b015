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
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/jeremyhahn/go-curvetoken/pkg/signing"
	"github.com/spf13/cobra"
)

// signCmd signs a message with a stored private key
var signCmd = &cobra.Command{
	Use:   "sign <message>",
	Short: "Sign a message",
	Long: `Sign a message with a stored private key. Pass "-" as the message
to read it from stdin. The signature is printed base64 encoded.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)

		curveName, _ := cmd.Flags().GetString("curve")
		keyFile, _ := cmd.Flags().GetString("key")

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

		message, err := readMessage(args[0])
		if err != nil {
			handleError(err)
			return
		}

		signer, err := signing.NewSigner(key)
		if err != nil {
			handleError(err)
			return
		}

		printVerbose("Signing %d bytes with %s", len(message), signer.Algorithm())

		signature, err := signer.Sign(message)
		if err != nil {
			handleError(fmt.Errorf("failed to sign: %w", err))
			return
		}

		if err := printer.PrintSignature(base64.StdEncoding.EncodeToString(signature)); err != nil {
			handleError(err)
		}
	},
}

// verifyCmd verifies a signature against a public key
var verifyCmd = &cobra.Command{
	Use:   "verify <message> <signature>",
	Short: "Verify a signature",
	Long: `Verify a base64 signature over a message against a hex public key.
Pass "-" as the message to read it from stdin.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)

		curveName, _ := cmd.Flags().GetString("curve")
		publicHex, _ := cmd.Flags().GetString("public-key")

		curve, err := parseCurveFlag(curveName)
		if err != nil {
			handleError(err)
			return
		}

		publicKey, err := hex.DecodeString(publicHex)
		if err != nil {
			handleError(fmt.Errorf("public key is not valid hex: %w", err))
			return
		}

		message, err := readMessage(args[0])
		if err != nil {
			handleError(err)
			return
		}

		signature, err := base64.StdEncoding.DecodeString(args[1])
		if err != nil {
			handleError(fmt.Errorf("signature is not valid base64: %w", err))
			return
		}

		if err := signing.Verify(curve, publicKey, message, signature); err != nil {
			handleError(fmt.Errorf("signature verification failed: %w", err))
			return
		}

		if err := printer.PrintSuccess("Signature verified"); err != nil {
			handleError(err)
		}
	},
}

func init() {
	signCmd.Flags().String("curve", "ed25519", "curve (ed25519, p256)")
	signCmd.Flags().String("key", "", "private key file")
	_ = signCmd.MarkFlagRequired("key")

	verifyCmd.Flags().String("curve", "ed25519", "curve (ed25519, p256)")
	verifyCmd.Flags().String("public-key", "", "hex-encoded public key")
	_ = verifyCmd.MarkFlagRequired("public-key")
}
