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

// Package types contains shared type definitions used across the module:
// curve identifiers and token signing algorithms. This package depends on
// nothing else in the module to prevent import cycles.
package types

import (
	"errors"
	"strings"
)

var (
	// ErrUnknownCurve is returned when a curve name is not recognized.
	ErrUnknownCurve = errors.New("types: unknown curve")

	// ErrUnknownAlgorithm is returned when a signing algorithm name is not
	// recognized.
	ErrUnknownAlgorithm = errors.New("types: unknown algorithm")
)

// Curve identifies an elliptic curve supported by the module.
type Curve string

const (
	// CurveEd25519 is the twisted Edwards curve used for EdDSA signatures
	// and, via its Montgomery form, X25519 key agreement.
	CurveEd25519 Curve = "Ed25519"

	// CurveP256 is the NIST P-256 short Weierstrass curve used for ECDSA
	// signatures and ECDH key agreement.
	CurveP256 Curve = "P-256"
)

// String returns the canonical curve name.
func (c Curve) String() string { return string(c) }

// Valid reports whether the curve is one the module supports.
func (c Curve) Valid() bool {
	return c == CurveEd25519 || c == CurveP256
}

// ParseCurve converts a curve name to a Curve, accepting the common
// aliases used in JOSE and OpenSSL output.
func ParseCurve(name string) (Curve, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ED25519", "CURVE25519", "X25519":
		return CurveEd25519, nil
	case "P-256", "P256", "PRIME256V1", "SECP256R1", "NISTP256":
		return CurveP256, nil
	default:
		return "", ErrUnknownCurve
	}
}

// Algorithm identifies a JOSE token signing algorithm.
type Algorithm string

const (
	// AlgHS256 is HMAC with SHA-256.
	AlgHS256 Algorithm = "HS256"

	// AlgHS384 is HMAC with SHA-384.
	AlgHS384 Algorithm = "HS384"

	// AlgHS512 is HMAC with SHA-512.
	AlgHS512 Algorithm = "HS512"

	// AlgES256 is ECDSA over P-256 with SHA-256.
	AlgES256 Algorithm = "ES256"

	// AlgEdDSA is Ed25519 per RFC 8037.
	AlgEdDSA Algorithm = "EdDSA"
)

// String returns the JOSE "alg" header value.
func (a Algorithm) String() string { return string(a) }

// Valid reports whether the algorithm is one the module supports.
func (a Algorithm) Valid() bool {
	switch a {
	case AlgHS256, AlgHS384, AlgHS512, AlgES256, AlgEdDSA:
		return true
	}
	return false
}

// Symmetric reports whether the algorithm signs and verifies with the
// same secret.
func (a Algorithm) Symmetric() bool {
	switch a {
	case AlgHS256, AlgHS384, AlgHS512:
		return true
	}
	return false
}

// Curve returns the curve an asymmetric algorithm signs with. Symmetric
// algorithms report false.
func (a Algorithm) Curve() (Curve, bool) {
	switch a {
	case AlgES256:
		return CurveP256, true
	case AlgEdDSA:
		return CurveEd25519, true
	}
	return "", false
}

// ParseAlgorithm converts a JOSE "alg" value to an Algorithm. Matching is
// exact: JOSE algorithm names are case-sensitive.
func ParseAlgorithm(name string) (Algorithm, error) {
	a := Algorithm(name)
	if !a.Valid() {
		return "", ErrUnknownAlgorithm
	}
	return a, nil
}
