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
	"os"

	"github.com/jeremyhahn/go-curvetoken/pkg/logging"
	"github.com/spf13/cobra"
)

var (
	// Global configuration
	globalConfig *Config

	// CLI logger, debug-enabled when --verbose is set
	logger = logging.DefaultLogger()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "curvetoken",
	Short: "curvetoken CLI - Elliptic curve keys, signatures, and tokens",
	Long: `curvetoken CLI provides a command-line interface for elliptic curve
key generation, signing, key agreement, and JSON Web Tokens.

Supported curves:
  - ed25519: EdDSA signatures and X25519 key agreement
  - p256:    ECDSA (ES256) signatures and ECDH key agreement

Supported token algorithms:
  - HS256, HS384, HS512 (HMAC)
  - ES256 (ECDSA over P-256)
  - EdDSA (Ed25519)`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if globalConfig.Verbose {
			logger = logging.NewLogger(true)
		}
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Initialize global config
	globalConfig = NewConfig()

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&globalConfig.ConfigFile, "config", "",
		"config file (default is $HOME/.curvetoken.yaml)")
	rootCmd.PersistentFlags().StringVarP(&globalConfig.OutputFormat, "output", "o", "text",
		"output format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&globalConfig.Verbose, "verbose", "v", false,
		"verbose output")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(signCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(deriveCmd)
	rootCmd.AddCommand(tokenCmd)
}

// getConfig returns the global configuration
func getConfig() *Config {
	return globalConfig
}

// handleError prints an error and exits with code 1
func handleError(err error) {
	printer := NewPrinter(globalConfig.OutputFormat, os.Stderr)
	_ = printer.PrintError(err) // Error printing to stderr is best-effort
	os.Exit(1)
}

// printVerbose logs a debug message when verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if globalConfig.Verbose {
		logger.Debugf(format, args...)
	}
}
