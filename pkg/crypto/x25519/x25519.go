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

// Package x25519 implements RFC 7748 X25519 key agreement on the
// Curve25519 u-line with a constant-time Montgomery ladder.
//
// X25519 is related to Ed25519 but serves a different purpose:
// - Ed25519: digital signatures (signing/verification)
// - X25519: key agreement (shared secret derivation)
//
// The raw shared secret is not uniformly distributed; run it through
// DeriveKey (HKDF-SHA256) before using it as key material.
package x25519

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/jeremyhahn/go-curvetoken/pkg/crypto/field"
)

// KeySize is the length of private keys, public keys, and shared secrets.
const KeySize = 32

var (
	fp = field.P25519

	// a24 = (486662 - 2) / 4, the Montgomery ladder constant.
	a24 = fp.FromUint64(121665)

	// p - 2, big-endian, for Fermat inversion.
	expInvert = mustDecodeExp("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeb")
)

func mustDecodeExp(s string) []byte {
	out, err := hex.DecodeString(s)
	if err != nil {
		panic("x25519: bad exponent constant")
	}
	return out
}

// Basepoint returns the canonical encoding of the generator u = 9.
func Basepoint() []byte {
	out := make([]byte, KeySize)
	out[0] = 9
	return out
}

// clamp applies the RFC 7748 scalar clamping in place.
func clamp(k []byte) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}

// ladder runs the Montgomery ladder over the clamped scalar bits with a
// constant-time conditional swap per step. The returned element is the
// affine u coordinate of the product.
func ladder(scalar, point []byte) field.Element {
	var k [KeySize]byte
	copy(k[:], scalar)
	clamp(k[:])

	// RFC 7748 masks the top bit of the u coordinate and accepts
	// non-canonical values, reducing them mod p.
	var u [KeySize]byte
	copy(u[:], point)
	u[31] &= 0x7f
	x1, _ := fp.SetBytesLE(u[:])

	x2, z2 := fp.One(), field.Element{}
	x3, z3 := x1, fp.One()

	var swap uint64
	for t := 254; t >= 0; t-- {
		bit := field.Bit(k[:], t)
		swap ^= bit
		field.Swap(swap, &x2, &x3)
		field.Swap(swap, &z2, &z3)
		swap = bit

		a := fp.Add(x2, z2)
		aa := fp.Square(a)
		bSum := fp.Sub(x2, z2)
		bb := fp.Square(bSum)
		e := fp.Sub(aa, bb)
		c := fp.Add(x3, z3)
		d := fp.Sub(x3, z3)
		da := fp.Mul(d, a)
		cb := fp.Mul(c, bSum)

		x3 = fp.Square(fp.Add(da, cb))
		z3 = fp.Mul(x1, fp.Square(fp.Sub(da, cb)))
		x2 = fp.Mul(aa, bb)
		z2 = fp.Mul(e, fp.Add(aa, fp.Mul(a24, e)))
	}
	field.Swap(swap, &x2, &x3)
	field.Swap(swap, &z2, &z3)

	return fp.Mul(x2, fp.Invert(z2, expInvert))
}

// X25519 computes scalar multiplication on the Curve25519 u-line. The
// result is the all-zero string exactly when the peer point has small
// order, which fails with ErrInvalidPeerKey.
func X25519(scalar, point []byte) ([]byte, error) {
	if len(scalar) != KeySize {
		return nil, ErrInvalidKeySize
	}
	if len(point) != KeySize {
		return nil, ErrInvalidPeerKey
	}
	out := ladder(scalar, point)
	if fp.IsZero(out) == 1 {
		return nil, ErrInvalidPeerKey
	}
	return fp.BytesLE(out), nil
}

// KeyPair holds an X25519 private scalar and its public point.
type KeyPair struct {
	private [KeySize]byte
	public  [KeySize]byte
}

// GenerateKey creates a key pair from the given entropy source. Clamping
// makes every 32-byte string a valid private key.
func GenerateKey(rand io.Reader) (*KeyPair, error) {
	var priv [KeySize]byte
	if _, err := io.ReadFull(rand, priv[:]); err != nil {
		return nil, err
	}
	return NewKeyFromBytes(priv[:])
}

// NewKeyFromBytes constructs a key pair from 32 private key bytes.
func NewKeyFromBytes(priv []byte) (*KeyPair, error) {
	if len(priv) != KeySize {
		return nil, ErrInvalidKeySize
	}
	kp := &KeyPair{}
	copy(kp.private[:], priv)
	copy(kp.public[:], fp.BytesLE(ladder(priv, Basepoint())))
	return kp, nil
}

// Public returns the public key bytes.
func (k *KeyPair) Public() []byte {
	out := make([]byte, KeySize)
	copy(out, k.public[:])
	return out
}

// Bytes returns the private key bytes. Explicit export only; the key
// never serializes itself implicitly.
func (k *KeyPair) Bytes() []byte {
	out := make([]byte, KeySize)
	copy(out, k.private[:])
	return out
}

// String redacts the key material.
func (k *KeyPair) String() string { return "x25519.KeyPair(redacted)" }

// SharedSecret performs X25519 key agreement with a peer public key,
// rejecting small-order peer points.
func (k *KeyPair) SharedSecret(peerPublic []byte) ([]byte, error) {
	return X25519(k.private[:], peerPublic)
}

// DeriveKey derives key material from a shared secret using HKDF-SHA256.
//
// HKDF is required because the raw ECDH output is not uniformly
// distributed. Salt and info are optional; info should bind the derived
// key to its application context.
func DeriveKey(sharedSecret, salt, info []byte, keyLength int) ([]byte, error) {
	if len(sharedSecret) == 0 {
		return nil, ErrEmptySharedSecret
	}
	if keyLength <= 0 || keyLength > 255*sha256.Size {
		return nil, ErrInvalidKeyLength
	}
	out := make([]byte, keyLength)
	if _, err := io.ReadFull(hkdf.New(sha256.New, sharedSecret, salt, info), out); err != nil {
		return nil, err
	}
	return out, nil
}
