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

package weierstrass

import (
	"crypto/hmac"
	"crypto/sha256"
	"io"
)

// SignatureSize is the raw r||s signature length (the JOSE ES256 format).
const SignatureSize = 64

// PrivateKey is a P-256 signing key: a scalar d in [1, n-1] and the
// derived public point d*G.
type PrivateKey struct {
	d      [ScalarSize]byte // big-endian
	public Point
}

// GenerateKey creates a private key by rejection sampling from the given
// entropy source, so the scalar distribution carries no modulo bias.
func GenerateKey(rand io.Reader) (*PrivateKey, error) {
	var buf [ScalarSize]byte
	for {
		if _, err := io.ReadFull(rand, buf[:]); err != nil {
			return nil, err
		}
		key, err := NewKeyFromBytes(buf[:])
		if err == nil {
			return key, nil
		}
	}
}

// NewKeyFromBytes constructs a private key from a 32-byte big-endian
// scalar, rejecting values outside [1, n-1].
func NewKeyFromBytes(d []byte) (*PrivateKey, error) {
	if len(d) != ScalarSize {
		return nil, ErrInvalidScalar
	}
	e, ok := sn.SetBytesBE(d)
	if ok != 1 || sn.IsZero(e) == 1 {
		return nil, ErrInvalidScalar
	}
	k := &PrivateKey{}
	copy(k.d[:], d)
	k.public = ScalarBaseMult(d)
	return k, nil
}

// Bytes returns the big-endian scalar. Explicit export only; the key
// never serializes itself implicitly.
func (k *PrivateKey) Bytes() []byte {
	out := make([]byte, ScalarSize)
	copy(out, k.d[:])
	return out
}

// Public returns the compressed public key.
func (k *PrivateKey) Public() []byte {
	enc, _ := k.public.Encode() // d != 0, never the identity
	return enc
}

// String redacts the key material.
func (k *PrivateKey) String() string { return "weierstrass.PrivateKey(redacted)" }

// Sign produces a deterministic ECDSA signature over SHA-256(message)
// with an RFC 6979 nonce, encoded as raw r||s. Like the EdDSA path, no
// external randomness is consumed.
func (k *PrivateKey) Sign(message []byte) []byte {
	digest := sha256.Sum256(message)
	e := sn.SetWideBytesBE(digest[:])
	d, _ := sn.SetBytesBE(k.d[:])

	nonce := newNonceReader(k.d[:], digest[:])
	for {
		kn := nonce.next()
		kScalar, ok := sn.SetBytesBE(kn)
		if ok != 1 || sn.IsZero(kScalar) == 1 {
			continue
		}

		rx, _, err := ScalarBaseMult(kn).Affine()
		if err != nil {
			continue
		}
		r := sn.SetWideBytesBE(rx)
		if sn.IsZero(r) == 1 {
			continue
		}

		kInv := sn.Invert(kScalar, expInvertN)
		s := sn.Mul(kInv, sn.Add(e, sn.Mul(d, r)))
		if sn.IsZero(s) == 1 {
			continue
		}

		sig := make([]byte, 0, SignatureSize)
		sig = append(sig, sn.BytesBE(r)...)
		return append(sig, sn.BytesBE(s)...)
	}
}

// Verify checks a raw r||s signature over SHA-256(message) against a
// compressed public key. Wrong-length signatures fail with
// ErrMalformedSignature, undecodable keys with ErrInvalidPublicKey, and
// everything else with ErrVerificationFailed.
func Verify(publicKey, message, sig []byte) error {
	if len(sig) != SignatureSize {
		return ErrMalformedSignature
	}
	q, err := Decode(publicKey)
	if err != nil || q.IsIdentity() {
		return ErrInvalidPublicKey
	}

	r, okR := sn.SetBytesBE(sig[:32])
	s, okS := sn.SetBytesBE(sig[32:])
	if okR != 1 || okS != 1 || sn.IsZero(r) == 1 || sn.IsZero(s) == 1 {
		return ErrVerificationFailed
	}

	digest := sha256.Sum256(message)
	e := sn.SetWideBytesBE(digest[:])

	w := sn.Invert(s, expInvertN)
	u1 := sn.BytesBE(sn.Mul(e, w))
	u2 := sn.BytesBE(sn.Mul(r, w))

	sum := ScalarBaseMult(u1).Add(ScalarMult(u2, q))
	rx, _, err := sum.Affine()
	if err != nil {
		return ErrVerificationFailed
	}
	v := sn.SetWideBytesBE(rx)
	if sn.Equal(v, r) != 1 {
		return ErrVerificationFailed
	}
	return nil
}

// nonceReader implements the RFC 6979 HMAC-SHA256 DRBG over the private
// scalar and message digest.
type nonceReader struct {
	k, v []byte
}

func newNonceReader(priv, digest []byte) *nonceReader {
	n := &nonceReader{
		k: make([]byte, sha256.Size),
		v: make([]byte, sha256.Size),
	}
	for i := range n.v {
		n.v[i] = 0x01
	}

	// bits2octets: the digest reduced mod n, re-encoded.
	z := sn.BytesBE(sn.SetWideBytesBE(digest))

	n.k = n.mac(n.k, n.v, []byte{0x00}, priv, z)
	n.v = n.mac(n.k, n.v)
	n.k = n.mac(n.k, n.v, []byte{0x01}, priv, z)
	n.v = n.mac(n.k, n.v)
	return n
}

func (n *nonceReader) mac(key []byte, parts ...[]byte) []byte {
	h := hmac.New(sha256.New, key)
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// next yields the candidate nonce for the current round and steps the
// generator for the following one.
func (n *nonceReader) next() []byte {
	n.v = n.mac(n.k, n.v)
	out := make([]byte, ScalarSize)
	copy(out, n.v)

	n.k = n.mac(n.k, n.v, []byte{0x00})
	n.v = n.mac(n.k, n.v)
	return out
}
