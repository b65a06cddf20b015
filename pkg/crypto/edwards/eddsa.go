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

package edwards

import (
	"crypto/sha512"
	"crypto/subtle"
	"io"
)

const (
	// SeedSize is the private key seed length.
	SeedSize = 32

	// PublicKeySize is the compressed public key length.
	PublicKeySize = 32

	// SignatureSize is the EdDSA signature length (R || S).
	SignatureSize = 64
)

// PrivateKey is an Ed25519 private key expanded from a 32-byte seed per
// RFC 8032. The clamped scalar and the signing prefix are derived once at
// construction and kept immutable.
type PrivateKey struct {
	seed   [SeedSize]byte
	scalar [32]byte
	prefix [32]byte
	public [PublicKeySize]byte
}

// GenerateKey creates a private key from the given entropy source.
func GenerateKey(rand io.Reader) (*PrivateKey, error) {
	var seed [SeedSize]byte
	if _, err := io.ReadFull(rand, seed[:]); err != nil {
		return nil, err
	}
	return NewKeyFromSeed(seed[:])
}

// NewKeyFromSeed deterministically expands a 32-byte seed into a key pair.
func NewKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if len(seed) != SeedSize {
		return nil, ErrInvalidSeed
	}
	k := &PrivateKey{}
	copy(k.seed[:], seed)

	h := sha512.Sum512(seed)
	copy(k.scalar[:], h[:32])
	copy(k.prefix[:], h[32:])
	k.scalar[0] &= 248
	k.scalar[31] &= 63
	k.scalar[31] |= 64

	copy(k.public[:], ScalarBaseMult(k.scalar[:]).Encode())
	return k, nil
}

// Seed returns a copy of the 32-byte seed.
func (k *PrivateKey) Seed() []byte {
	out := make([]byte, SeedSize)
	copy(out, k.seed[:])
	return out
}

// Public returns the compressed public key.
func (k *PrivateKey) Public() []byte {
	out := make([]byte, PublicKeySize)
	copy(out, k.public[:])
	return out
}

// String redacts the key material.
func (k *PrivateKey) String() string { return "edwards.PrivateKey(redacted)" }

// Sign produces a deterministic RFC 8032 signature over message. The nonce
// is derived from the private prefix and the message, so no external
// randomness is consumed and nonce reuse cannot occur.
func (k *PrivateKey) Sign(message []byte) []byte {
	h := sha512.New()
	h.Write(k.prefix[:])
	h.Write(message)
	r := sc.SetWideBytesLE(h.Sum(nil))

	rBytes := sc.BytesLE(r)
	encR := ScalarBaseMult(rBytes).Encode()

	h.Reset()
	h.Write(encR)
	h.Write(k.public[:])
	h.Write(message)
	hram := sc.SetWideBytesLE(h.Sum(nil))

	a := sc.SetWideBytesLE(k.scalar[:])
	s := sc.Add(r, sc.Mul(hram, a))

	sig := make([]byte, 0, SignatureSize)
	sig = append(sig, encR...)
	sig = append(sig, sc.BytesLE(s)...)
	return sig
}

// Verify checks an EdDSA signature. Wrong-length input fails with
// ErrMalformedSignature; any well-formed but invalid signature fails with
// ErrVerificationFailed. An undecodable public key fails with
// ErrInvalidPublicKey. Verification never panics on attacker input.
func Verify(publicKey, message, sig []byte) error {
	if len(sig) != SignatureSize {
		return ErrMalformedSignature
	}
	if len(publicKey) != PublicKeySize {
		return ErrInvalidPublicKey
	}

	a, err := Decode(publicKey)
	if err != nil {
		return ErrInvalidPublicKey
	}
	r, err := Decode(sig[:32])
	if err != nil {
		return ErrVerificationFailed
	}
	s, ok := sc.SetBytesLE(sig[32:])
	if ok != 1 {
		// S >= L: reject to rule out signature malleability.
		return ErrVerificationFailed
	}

	h := sha512.New()
	h.Write(sig[:32])
	h.Write(publicKey)
	h.Write(message)
	hram := sc.SetWideBytesLE(h.Sum(nil))

	lhs := ScalarBaseMult(sc.BytesLE(s))
	rhs := r.Add(ScalarMult(sc.BytesLE(hram), a))

	if subtle.ConstantTimeCompare(lhs.Encode(), rhs.Encode()) != 1 {
		return ErrVerificationFailed
	}
	return nil
}
