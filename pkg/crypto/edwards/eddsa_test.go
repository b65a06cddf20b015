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
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex: %v", err)
	}
	return b
}

// RFC 8032 section 7.1, TEST 2.
func TestRFC8032Vector(t *testing.T) {
	seed := mustHex(t, "4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb")
	wantPub := mustHex(t, "3d4017c3e843895a92b70aa74d1b7ebc9c982ccf2ec4968cc0cd55f12af4660c")
	msg := []byte{0x72}
	wantSig := mustHex(t, "92a009a9f0d4cab8720e820b5f642540a2b27b5416503f8fb3762223ebdb69da"+
		"085ac1e43e15996e458f3613d0f11d8c387b2eaeb4302aeeb00d291612bb0c00")

	key, err := NewKeyFromSeed(seed)
	if err != nil {
		t.Fatalf("NewKeyFromSeed: %v", err)
	}
	if !bytes.Equal(key.Public(), wantPub) {
		t.Fatalf("public key = %x, want %x", key.Public(), wantPub)
	}
	sig := key.Sign(msg)
	if !bytes.Equal(sig, wantSig) {
		t.Fatalf("signature = %x, want %x", sig, wantSig)
	}
	if err := Verify(key.Public(), msg, sig); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

// Signing a fixed message with a fixed key must always produce the same
// signature: the nonce is derived deterministically.
func TestDeterministicSignature(t *testing.T) {
	seed := make([]byte, SeedSize)
	for i := range seed {
		seed[i] = byte(i)
	}
	key, err := NewKeyFromSeed(seed)
	if err != nil {
		t.Fatalf("NewKeyFromSeed: %v", err)
	}

	wantPub := mustHex(t, "03a107bff3ce10be1d70dd18e74bc09967e4d6309ba50d5f1ddc8664125531b8")
	if !bytes.Equal(key.Public(), wantPub) {
		t.Fatalf("public key = %x, want %x", key.Public(), wantPub)
	}

	wantSig := mustHex(t, "e1a7fca94a835127885b99e2eba733d6ee5bf5dc463ed8385eb6f1dcaa1117c0"+
		"f151750a10f46f5b3796a91203578f702c85c67c334b5689a516284d499f710f")
	for i := 0; i < 3; i++ {
		sig := key.Sign([]byte("hello"))
		if !bytes.Equal(sig, wantSig) {
			t.Fatalf("signature = %x, want %x", sig, wantSig)
		}
	}
}

// Signatures must be bit-for-bit interoperable with crypto/ed25519.
func TestStdlibInterop(t *testing.T) {
	for i := 0; i < 10; i++ {
		seed := make([]byte, SeedSize)
		if _, err := rand.Read(seed); err != nil {
			t.Fatalf("rand: %v", err)
		}
		msg := []byte("interop message")

		ours, err := NewKeyFromSeed(seed)
		if err != nil {
			t.Fatalf("NewKeyFromSeed: %v", err)
		}
		theirs := ed25519.NewKeyFromSeed(seed)

		if !bytes.Equal(ours.Public(), theirs.Public().(ed25519.PublicKey)) {
			t.Fatal("public keys differ from crypto/ed25519")
		}
		if !bytes.Equal(ours.Sign(msg), ed25519.Sign(theirs, msg)) {
			t.Fatal("signatures differ from crypto/ed25519")
		}
		if !ed25519.Verify(theirs.Public().(ed25519.PublicKey), msg, ours.Sign(msg)) {
			t.Fatal("crypto/ed25519 rejected our signature")
		}
		if err := Verify(ours.Public(), msg, ed25519.Sign(theirs, msg)); err != nil {
			t.Fatalf("we rejected a crypto/ed25519 signature: %v", err)
		}
	}
}

func TestTamperSensitivity(t *testing.T) {
	key, err := GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	msg := []byte("payment of 100 units to account 42")
	sig := key.Sign(msg)

	for bit := 0; bit < len(msg)*8; bit += 7 {
		bad := bytes.Clone(msg)
		bad[bit/8] ^= 1 << (bit % 8)
		if err := Verify(key.Public(), bad, sig); !errors.Is(err, ErrVerificationFailed) {
			t.Fatalf("flipping message bit %d: err = %v, want ErrVerificationFailed", bit, err)
		}
	}
	for bit := 0; bit < len(sig)*8; bit += 13 {
		bad := bytes.Clone(sig)
		bad[bit/8] ^= 1 << (bit % 8)
		if err := Verify(key.Public(), msg, bad); err == nil {
			t.Fatalf("flipping signature bit %d still verified", bit)
		}
	}
}

func TestVerifyErrorTaxonomy(t *testing.T) {
	key, err := GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	msg := []byte("msg")
	sig := key.Sign(msg)

	tests := []struct {
		name    string
		pub     []byte
		sig     []byte
		wantErr error
	}{
		{"short signature", key.Public(), sig[:63], ErrMalformedSignature},
		{"long signature", key.Public(), append(bytes.Clone(sig), 0), ErrMalformedSignature},
		{"empty signature", key.Public(), nil, ErrMalformedSignature},
		{"short public key", key.Public()[:31], sig, ErrInvalidPublicKey},
		{"non-canonical S", key.Public(), append(bytes.Clone(sig[:32]), bytes.Repeat([]byte{0xff}, 32)...), ErrVerificationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Verify(tt.pub, msg, tt.sig); !errors.Is(err, tt.wantErr) {
				t.Errorf("Verify() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSeedRoundTrip(t *testing.T) {
	key, err := GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	again, err := NewKeyFromSeed(key.Seed())
	if err != nil {
		t.Fatalf("NewKeyFromSeed: %v", err)
	}
	if !bytes.Equal(key.Public(), again.Public()) {
		t.Fatal("seed round trip changed the public key")
	}

	if _, err := NewKeyFromSeed(make([]byte, 16)); !errors.Is(err, ErrInvalidSeed) {
		t.Errorf("short seed: err = %v, want ErrInvalidSeed", err)
	}
}
