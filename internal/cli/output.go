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
	"encoding/json"
	"fmt"
	"io"

	"github.com/jeremyhahn/go-curvetoken/pkg/encoding/jwt"
)

// OutputFormat defines the output format type
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
)

// Printer handles formatted output
type Printer struct {
	format OutputFormat
	writer io.Writer
}

// NewPrinter creates a new Printer
func NewPrinter(format string, writer io.Writer) *Printer {
	return &Printer{
		format: OutputFormat(format),
		writer: writer,
	}
}

// PrintKeyInfo prints a generated or loaded key
func (p *Printer) PrintKeyInfo(curve, publicKey, keyFile string) error {
	switch p.format {
	case OutputFormatJSON:
		info := map[string]interface{}{
			"curve":      curve,
			"public_key": publicKey,
		}
		if keyFile != "" {
			info["key_file"] = keyFile
		}
		return p.printJSON(info)
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Curve:      %s\n", curve)
		fmt.Fprintf(p.writer, "Public Key: %s\n", publicKey)
		if keyFile != "" {
			fmt.Fprintf(p.writer, "Key File:   %s\n", keyFile)
		}
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSignature prints a signature (base64 encoded)
func (p *Printer) PrintSignature(signature string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"signature": signature,
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, signature)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSharedSecret prints a derived secret or key (hex encoded)
func (p *Printer) PrintSharedSecret(secret string, derived bool) error {
	switch p.format {
	case OutputFormatJSON:
		field := "shared_secret"
		if derived {
			field = "derived_key"
		}
		return p.printJSON(map[string]interface{}{
			field: secret,
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, secret)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintToken prints an encoded token
func (p *Printer) PrintToken(token string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"token": token,
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, token)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintDecodedToken prints a verified token's header and claims
func (p *Printer) PrintDecodedToken(token *jwt.Token) error {
	switch p.format {
	case OutputFormatJSON:
		claimsJSON, err := json.Marshal(&token.Claims)
		if err != nil {
			return err
		}
		return p.printJSON(map[string]interface{}{
			"header": token.Header,
			"claims": json.RawMessage(claimsJSON),
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Algorithm: %s\n", token.Header.Algorithm)
		if token.Header.KeyID != "" {
			fmt.Fprintf(p.writer, "Key ID:    %s\n", token.Header.KeyID)
		}
		fmt.Fprintln(p.writer, "Claims:")
		claimsJSON, err := json.MarshalIndent(&token.Claims, "  ", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(p.writer, "  %s\n", claimsJSON)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintSuccess prints a success message
func (p *Printer) PrintSuccess(message string) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status":  "success",
			"message": message,
		})
	case OutputFormatText:
		fmt.Fprintln(p.writer, message)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// PrintError prints an error message
func (p *Printer) PrintError(err error) error {
	switch p.format {
	case OutputFormatJSON:
		return p.printJSON(map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		})
	case OutputFormatText:
		fmt.Fprintf(p.writer, "Error: %v\n", err)
		return nil
	default:
		return fmt.Errorf("unknown output format: %s", p.format)
	}
}

// printJSON prints data as JSON
func (p *Printer) printJSON(data interface{}) error {
	encoder := json.NewEncoder(p.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
