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

// Package keypair provides curve-tagged signing key pairs over both
// module curves. It is the key-management layer the signing facade and
// the CLI build on: generation, import from stored bytes, and public
// key export, with the curve carried alongside the key material so keys
// cannot be used with the wrong algorithm.
package keypair

import (
	"io"

	"github.com/jeremyhahn/go-curvetoken/pkg/crypto/edwards"
	"github.com/jeremyhahn/go-curvetoken/pkg/crypto/weierstrass"
	"github.com/jeremyhahn/go-curvetoken/pkg/types"
)

// KeyPair holds a signing key for one curve. The zero value is unusable;
// construct with Generate or FromBytes.
type KeyPair struct {
	curve types.Curve
	ed    *edwards.PrivateKey
	p256  *weierstrass.PrivateKey
}

// Generate creates a new key pair on the given curve from the entropy
// source.
func Generate(curve types.Curve, rand io.Reader) (*KeyPair, error) {
	switch curve {
	case types.CurveEd25519:
		key, err := edwards.GenerateKey(rand)
		if err != nil {
			return nil, err
		}
		return &KeyPair{curve: curve, ed: key}, nil
	case types.CurveP256:
		key, err := weierstrass.GenerateKey(rand)
		if err != nil {
			return nil, err
		}
		return &KeyPair{curve: curve, p256: key}, nil
	default:
		return nil, ErrUnsupportedCurve
	}
}

// FromBytes reconstructs a key pair from stored private key bytes: a
// 32-byte Ed25519 seed, or a 32-byte big-endian P-256 scalar.
func FromBytes(curve types.Curve, priv []byte) (*KeyPair, error) {
	switch curve {
	case types.CurveEd25519:
		key, err := edwards.NewKeyFromSeed(priv)
		if err != nil {
			return nil, err
		}
		return &KeyPair{curve: curve, ed: key}, nil
	case types.CurveP256:
		key, err := weierstrass.NewKeyFromBytes(priv)
		if err != nil {
			return nil, err
		}
		return &KeyPair{curve: curve, p256: key}, nil
	default:
		return nil, ErrUnsupportedCurve
	}
}

// Curve identifies the key's curve.
func (k *KeyPair) Curve() types.Curve { return k.curve }

// Public returns the public key encoding: 32 bytes compressed Edwards y
// for Ed25519, 33 bytes SEC1 compressed for P-256.
func (k *KeyPair) Public() []byte {
	switch k.curve {
	case types.CurveEd25519:
		return k.ed.Public()
	case types.CurveP256:
		return k.p256.Public()
	}
	return nil
}

// Bytes returns the private key bytes. Explicit export only; the key
// never serializes itself implicitly.
func (k *KeyPair) Bytes() []byte {
	switch k.curve {
	case types.CurveEd25519:
		return k.ed.Seed()
	case types.CurveP256:
		return k.p256.Bytes()
	}
	return nil
}

// Ed25519 returns the underlying Ed25519 key, or nil for other curves.
func (k *KeyPair) Ed25519() *edwards.PrivateKey { return k.ed }

// P256 returns the underlying P-256 key, or nil for other curves.
func (k *KeyPair) P256() *weierstrass.PrivateKey { return k.p256 }

// String redacts the key material.
func (k *KeyPair) String() string {
	return "keypair.KeyPair(" + k.curve.String() + ", redacted)"
}
