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

// Package jwk converts public keys to and from the JSON Web Key format
// (RFC 7517). Ed25519 keys map to OKP keys and P-256 keys to EC keys.
// Thumbprints follow RFC 7638 and make stable kid values for token
// headers.
package jwk

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/jeremyhahn/go-curvetoken/pkg/crypto/edwards"
	"github.com/jeremyhahn/go-curvetoken/pkg/crypto/weierstrass"
	"github.com/jeremyhahn/go-curvetoken/pkg/types"
)

var b64 = base64.RawURLEncoding

// JWK represents a public JSON Web Key
type JWK struct {
	// Kty is the key type: OKP for Ed25519, EC for P-256
	Kty string `json:"kty"`

	// Crv names the curve (Ed25519, P-256)
	Crv string `json:"crv"`

	// X is the base64url x coordinate, or the full point for OKP keys
	X string `json:"x"`

	// Y is the base64url y coordinate (EC keys only)
	Y string `json:"y,omitempty"`

	// Alg is the intended signature algorithm (EdDSA, ES256)
	Alg string `json:"alg,omitempty"`

	// Use is the public key use, always "sig" for keys produced here
	Use string `json:"use,omitempty"`

	// Kid is the key identifier
	Kid string `json:"kid,omitempty"`
}

// FromPublicKey creates a JWK from a public key in this module's wire
// encoding: 32 bytes for Ed25519, 33 bytes SEC1 compressed for P-256.
func FromPublicKey(curve types.Curve, publicKey []byte) (*JWK, error) {
	switch curve {
	case types.CurveEd25519:
		if _, err := edwards.Decode(publicKey); err != nil {
			return nil, ErrInvalidKey
		}
		return &JWK{
			Kty: "OKP",
			Crv: "Ed25519",
			X:   b64.EncodeToString(publicKey),
			Alg: string(types.AlgEdDSA),
			Use: "sig",
		}, nil
	case types.CurveP256:
		p, err := weierstrass.Decode(publicKey)
		if err != nil {
			return nil, ErrInvalidKey
		}
		x, y, err := p.Affine()
		if err != nil {
			return nil, ErrInvalidKey
		}
		return &JWK{
			Kty: "EC",
			Crv: "P-256",
			X:   b64.EncodeToString(x),
			Y:   b64.EncodeToString(y),
			Alg: string(types.AlgES256),
			Use: "sig",
		}, nil
	default:
		return nil, ErrUnsupportedKeyType
	}
}

// PublicKey returns the curve and public key bytes in this module's
// wire encoding, validating that the JWK describes a point on the
// curve.
func (j *JWK) PublicKey() (types.Curve, []byte, error) {
	switch {
	case j.Kty == "OKP" && j.Crv == "Ed25519":
		x, err := b64.DecodeString(j.X)
		if err != nil {
			return "", nil, ErrInvalidKey
		}
		if _, err := edwards.Decode(x); err != nil {
			return "", nil, ErrInvalidKey
		}
		return types.CurveEd25519, x, nil
	case j.Kty == "EC" && j.Crv == "P-256":
		x, err := b64.DecodeString(j.X)
		if err != nil {
			return "", nil, ErrInvalidKey
		}
		y, err := b64.DecodeString(j.Y)
		if err != nil {
			return "", nil, ErrInvalidKey
		}
		if len(x) != weierstrass.ScalarSize || len(y) != weierstrass.ScalarSize {
			return "", nil, ErrInvalidKey
		}
		compressed := make([]byte, weierstrass.CompressedPointSize)
		compressed[0] = 2 | (y[len(y)-1] & 1)
		copy(compressed[1:], x)
		p, err := weierstrass.Decode(compressed)
		if err != nil {
			return "", nil, ErrInvalidKey
		}
		// The compressed prefix only carries y's parity, so confirm the
		// decompressed y matches the one in the JWK.
		_, decodedY, err := p.Affine()
		if err != nil || !bytes.Equal(decodedY, y) {
			return "", nil, ErrInvalidKey
		}
		return types.CurveP256, compressed, nil
	default:
		return "", nil, ErrUnsupportedKeyType
	}
}

// Marshal serializes the JWK as JSON
func (j *JWK) Marshal() ([]byte, error) {
	return json.Marshal(j)
}

// Parse deserializes a JWK from JSON and validates the key material
func Parse(data []byte) (*JWK, error) {
	var j JWK
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("jwk: failed to parse: %w", err)
	}
	if _, _, err := j.PublicKey(); err != nil {
		return nil, err
	}
	return &j, nil
}

// Thumbprint computes the RFC 7638 SHA-256 thumbprint: the required
// members only, lexicographically ordered, hashed and base64url
// encoded. Suitable as a kid value.
func (j *JWK) Thumbprint() (string, error) {
	var canonical string
	switch {
	case j.Kty == "OKP" && j.Crv == "Ed25519":
		canonical = fmt.Sprintf(`{"crv":%q,"kty":%q,"x":%q}`, j.Crv, j.Kty, j.X)
	case j.Kty == "EC" && j.Crv == "P-256":
		canonical = fmt.Sprintf(`{"crv":%q,"kty":%q,"x":%q,"y":%q}`, j.Crv, j.Kty, j.X, j.Y)
	default:
		return "", ErrUnsupportedKeyType
	}
	sum := sha256.Sum256([]byte(canonical))
	return b64.EncodeToString(sum[:]), nil
}
