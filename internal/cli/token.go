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
	"strings"

	"github.com/jeremyhahn/go-curvetoken/pkg/encoding/jwt"
	"github.com/jeremyhahn/go-curvetoken/pkg/types"
	"github.com/spf13/cobra"
)

// tokenCmd represents the token command
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Encode and decode JSON Web Tokens",
	Long:  `Issue signed tokens and verify received ones`,
}

// tokenEncodeCmd issues a signed token
var tokenEncodeCmd = &cobra.Command{
	Use:   "encode <subject>",
	Short: "Issue a signed token",
	Long: `Issue a signed token for a subject. Issuer, audience, and lifetime
default to the configuration file and can be overridden with flags.
HMAC algorithms take --secret; ES256 and EdDSA take --key.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		subject := args[0]
		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)

		cfg, err := getConfig().LoadFile()
		if err != nil {
			handleError(err)
			return
		}

		algName, _ := cmd.Flags().GetString("algorithm")
		keyFile, _ := cmd.Flags().GetString("key")
		secretFile, _ := cmd.Flags().GetString("secret")
		kid, _ := cmd.Flags().GetString("kid")
		issuer, _ := cmd.Flags().GetString("issuer")
		audience, _ := cmd.Flags().GetStringSlice("audience")
		ttl, _ := cmd.Flags().GetDuration("ttl")
		claimPairs, _ := cmd.Flags().GetStringSlice("claim")

		alg, err := types.ParseAlgorithm(algName)
		if err != nil {
			handleError(fmt.Errorf("unknown algorithm %q", algName))
			return
		}

		if issuer == "" {
			issuer = cfg.Token.Issuer
		}
		if len(audience) == 0 {
			audience = cfg.Token.Audience
		}
		if ttl == 0 {
			ttl = cfg.Token.TTL
		}

		key, err := loadTokenKey(alg, keyFile, secretFile)
		if err != nil {
			handleError(err)
			return
		}

		claims := jwt.NewClaims(issuer, subject, audience, ttl)
		for _, pair := range claimPairs {
			name, value, ok := strings.Cut(pair, "=")
			if !ok {
				handleError(fmt.Errorf("claim %q is not in name=value form", pair))
				return
			}
			claims.Custom[name] = value
		}

		printVerbose("Issuing %s token for subject %q (ttl %s)", alg, subject, ttl)

		token, err := jwt.Encode(claims, alg, key, kid)
		if err != nil {
			handleError(fmt.Errorf("failed to encode token: %w", err))
			return
		}

		if err := printer.PrintToken(token); err != nil {
			handleError(err)
		}
	},
}

// tokenDecodeCmd verifies and prints a token
var tokenDecodeCmd = &cobra.Command{
	Use:   "decode <token>",
	Short: "Verify and decode a token",
	Long: `Verify a token's signature and claims, then print its contents.
The algorithm allow-list comes from the configuration file unless
--algorithms is given. Pass "-" to read the token from stdin.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		printer := NewPrinter(getConfig().OutputFormat, os.Stdout)

		cfg, err := getConfig().LoadFile()
		if err != nil {
			handleError(err)
			return
		}

		keyFile, _ := cmd.Flags().GetString("key")
		secretFile, _ := cmd.Flags().GetString("secret")
		publicHex, _ := cmd.Flags().GetString("public-key")
		algNames, _ := cmd.Flags().GetStringSlice("algorithms")
		expectedIssuer, _ := cmd.Flags().GetString("issuer")
		expectedAudience, _ := cmd.Flags().GetString("audience")

		raw, err := readMessage(args[0])
		if err != nil {
			handleError(err)
			return
		}
		tokenString := strings.TrimSpace(string(raw))

		allowed, err := cfg.Algorithms()
		if err != nil {
			handleError(err)
			return
		}
		if len(algNames) > 0 {
			allowed = allowed[:0]
			for _, name := range algNames {
				alg, err := types.ParseAlgorithm(name)
				if err != nil {
					handleError(fmt.Errorf("unknown algorithm %q", name))
					return
				}
				allowed = append(allowed, alg)
			}
		}

		key, err := loadVerifyKey(allowed, keyFile, secretFile, publicHex)
		if err != nil {
			handleError(err)
			return
		}

		opts := &jwt.DecodeOptions{
			AllowedAlgorithms: allowed,
			VerifyExpiry:      true,
			VerifyNotBefore:   true,
			ExpectedIssuer:    expectedIssuer,
			ExpectedAudience:  expectedAudience,
			ClockSkew:         cfg.Token.ClockSkew,
		}

		token, err := jwt.Decode(tokenString, key, opts)
		if err != nil {
			handleError(fmt.Errorf("token rejected: %w", err))
			return
		}

		if err := printer.PrintDecodedToken(token); err != nil {
			handleError(err)
		}
	},
}

// loadTokenKey resolves the signing key for token encode
func loadTokenKey(alg types.Algorithm, keyFile, secretFile string) (interface{}, error) {
	if alg.Symmetric() {
		if secretFile == "" {
			return nil, fmt.Errorf("%s requires --secret", alg)
		}
		return readSecret(secretFile)
	}
	if keyFile == "" {
		return nil, fmt.Errorf("%s requires --key", alg)
	}
	curve, _ := alg.Curve()
	return readPrivateKey(curve, keyFile)
}

// loadVerifyKey resolves the verification key for token decode. A
// private key file works for every algorithm; --public-key covers the
// asymmetric ones when only the public half is at hand.
func loadVerifyKey(allowed []types.Algorithm, keyFile, secretFile, publicHex string) (interface{}, error) {
	if secretFile != "" {
		return readSecret(secretFile)
	}
	if publicHex != "" {
		publicKey, err := hex.DecodeString(publicHex)
		if err != nil {
			return nil, fmt.Errorf("public key is not valid hex: %w", err)
		}
		return publicKey, nil
	}
	if keyFile != "" {
		for _, alg := range allowed {
			if curve, ok := alg.Curve(); ok {
				key, err := readPrivateKey(curve, keyFile)
				if err != nil {
					return nil, err
				}
				return key.Public(), nil
			}
		}
		return nil, fmt.Errorf("--key requires an asymmetric algorithm in the allow-list")
	}
	return nil, fmt.Errorf("one of --secret, --public-key, or --key is required")
}

func init() {
	tokenEncodeCmd.Flags().String("algorithm", "EdDSA", "signing algorithm (HS256, HS384, HS512, ES256, EdDSA)")
	tokenEncodeCmd.Flags().String("key", "", "private key file (ES256, EdDSA)")
	tokenEncodeCmd.Flags().String("secret", "", "HMAC secret file (HS256, HS384, HS512)")
	tokenEncodeCmd.Flags().String("kid", "", "key identifier for the token header")
	tokenEncodeCmd.Flags().String("issuer", "", "iss claim (default from config)")
	tokenEncodeCmd.Flags().StringSlice("audience", nil, "aud claim (default from config)")
	tokenEncodeCmd.Flags().Duration("ttl", 0, "token lifetime (default from config)")
	tokenEncodeCmd.Flags().StringSlice("claim", nil, "custom claim as name=value (repeatable)")

	tokenDecodeCmd.Flags().String("key", "", "private key file")
	tokenDecodeCmd.Flags().String("secret", "", "HMAC secret file")
	tokenDecodeCmd.Flags().String("public-key", "", "hex-encoded public key")
	tokenDecodeCmd.Flags().StringSlice("algorithms", nil, "algorithm allow-list (default from config)")
	tokenDecodeCmd.Flags().String("issuer", "", "expected iss claim")
	tokenDecodeCmd.Flags().String("audience", "", "expected aud claim")

	tokenCmd.AddCommand(tokenEncodeCmd)
	tokenCmd.AddCommand(tokenDecodeCmd)
}
