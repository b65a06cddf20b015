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

// Package ecdh provides Diffie-Hellman key agreement over both module
// curves behind one interface: X25519 on Curve25519 and ECDH on NIST
// P-256.
//
// The raw shared secret is the curve-level output (the X25519 u
// coordinate, or the big-endian x coordinate of the shared P-256 point).
// It is not uniformly distributed; derive working keys with DeriveKey
// before use.
package ecdh

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/jeremyhahn/go-curvetoken/pkg/crypto/weierstrass"
	"github.com/jeremyhahn/go-curvetoken/pkg/crypto/x25519"
	"github.com/jeremyhahn/go-curvetoken/pkg/types"
)

// SharedSecretSize is the raw shared secret length for both curves.
const SharedSecretSize = 32

// KeyAgreement performs Diffie-Hellman key agreement for one curve.
type KeyAgreement interface {
	// Curve identifies the curve this instance operates on.
	Curve() types.Curve

	// GenerateKey creates an ephemeral key pair from the entropy source.
	GenerateKey(rand io.Reader) (*KeyPair, error)

	// NewKeyFromBytes constructs a key pair from stored private key bytes.
	NewKeyFromBytes(priv []byte) (*KeyPair, error)

	// DeriveSharedSecret performs key agreement between a private key and
	// a peer public key, validating the peer key first.
	DeriveSharedSecret(key *KeyPair, peerPublic []byte) ([]byte, error)
}

// KeyPair holds curve-tagged key agreement key material.
type KeyPair struct {
	curve      types.Curve
	x25519Key  *x25519.KeyPair
	p256Scalar []byte
	public     []byte
}

// Curve identifies the key's curve.
func (k *KeyPair) Curve() types.Curve { return k.curve }

// Public returns the public key encoding: 32 bytes little-endian u for
// Curve25519, 33 bytes SEC1 compressed for P-256.
func (k *KeyPair) Public() []byte {
	out := make([]byte, len(k.public))
	copy(out, k.public)
	return out
}

// Bytes returns the private key bytes. Explicit export only.
func (k *KeyPair) Bytes() []byte {
	if k.curve == types.CurveEd25519 {
		return k.x25519Key.Bytes()
	}
	out := make([]byte, len(k.p256Scalar))
	copy(out, k.p256Scalar)
	return out
}

// String redacts the key material.
func (k *KeyPair) String() string { return "ecdh.KeyPair(redacted)" }

// New returns the key agreement implementation for the given curve.
func New(curve types.Curve) (KeyAgreement, error) {
	switch curve {
	case types.CurveEd25519:
		return montgomeryAgreement{}, nil
	case types.CurveP256:
		return nistAgreement{}, nil
	default:
		return nil, ErrUnsupportedCurve
	}
}

// montgomeryAgreement is X25519 over the Curve25519 u-line.
type montgomeryAgreement struct{}

func (montgomeryAgreement) Curve() types.Curve { return types.CurveEd25519 }

func (montgomeryAgreement) GenerateKey(rand io.Reader) (*KeyPair, error) {
	kp, err := x25519.GenerateKey(rand)
	if err != nil {
		return nil, err
	}
	return &KeyPair{curve: types.CurveEd25519, x25519Key: kp, public: kp.Public()}, nil
}

func (montgomeryAgreement) NewKeyFromBytes(priv []byte) (*KeyPair, error) {
	kp, err := x25519.NewKeyFromBytes(priv)
	if err != nil {
		return nil, err
	}
	return &KeyPair{curve: types.CurveEd25519, x25519Key: kp, public: kp.Public()}, nil
}

func (montgomeryAgreement) DeriveSharedSecret(key *KeyPair, peerPublic []byte) ([]byte, error) {
	if key == nil || key.x25519Key == nil || key.curve != types.CurveEd25519 {
		return nil, ErrCurveMismatch
	}
	secret, err := key.x25519Key.SharedSecret(peerPublic)
	if err != nil {
		return nil, ErrInvalidPeerKey
	}
	return secret, nil
}

// nistAgreement is ECDH over P-256. The shared secret is the big-endian
// x coordinate of d * Q.
type nistAgreement struct{}

func (nistAgreement) Curve() types.Curve { return types.CurveP256 }

func (nistAgreement) GenerateKey(rand io.Reader) (*KeyPair, error) {
	key, err := weierstrass.GenerateKey(rand)
	if err != nil {
		return nil, err
	}
	return &KeyPair{curve: types.CurveP256, p256Scalar: key.Bytes(), public: key.Public()}, nil
}

func (nistAgreement) NewKeyFromBytes(priv []byte) (*KeyPair, error) {
	key, err := weierstrass.NewKeyFromBytes(priv)
	if err != nil {
		return nil, err
	}
	return &KeyPair{curve: types.CurveP256, p256Scalar: key.Bytes(), public: key.Public()}, nil
}

func (nistAgreement) DeriveSharedSecret(key *KeyPair, peerPublic []byte) ([]byte, error) {
	if key == nil || key.p256Scalar == nil || key.curve != types.CurveP256 {
		return nil, ErrCurveMismatch
	}
	q, err := weierstrass.Decode(peerPublic)
	if err != nil || q.IsIdentity() || !q.IsOnCurve() {
		return nil, ErrInvalidPeerKey
	}
	shared := weierstrass.ScalarMult(key.p256Scalar, q)
	x, _, err := shared.Affine()
	if err != nil {
		// d in [1, n-1] and Q of prime order, so d*Q is never the identity.
		return nil, ErrInvalidPeerKey
	}
	return x, nil
}

// DeriveKey derives key material from a shared secret using HKDF-SHA256.
// Different info values produce independent keys from the same secret.
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

// Zeroize overwrites secret bytes in place. Best effort: the runtime may
// hold other copies.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
