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
	"crypto/rand"
	"errors"
	"testing"
	"time"
)

func randomScalar(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	if _, err := rand.Read(k); err != nil {
		t.Fatalf("rand: %v", err)
	}
	k[31] &= 0x0f // stay well under the group order
	return k
}

func TestBasepointOnCurve(t *testing.T) {
	if !Basepoint().IsOnCurve() {
		t.Fatal("basepoint not on curve")
	}
	if !Identity().IsOnCurve() {
		t.Fatal("identity not on curve")
	}
	if !Identity().IsIdentity() {
		t.Fatal("identity not recognized")
	}
	if Basepoint().IsIdentity() {
		t.Fatal("basepoint reported as identity")
	}
}

func TestGroupLaw(t *testing.T) {
	b := Basepoint()

	// Unified addition must double correctly.
	if !b.Add(b).Equal(b.Double()) {
		t.Fatal("B+B != 2B")
	}
	// Identity is neutral.
	if !b.Add(Identity()).Equal(b) {
		t.Fatal("B+0 != B")
	}
	// Associativity spot check: (2B+B)+B == 2B+(B+B).
	if !b.Double().Add(b).Add(b).Equal(b.Double().Add(b.Double())) {
		t.Fatal("addition not associative")
	}
}

func TestScalarMultMatchesRepeatedAddition(t *testing.T) {
	b := Basepoint()
	sum := Identity()
	for k := 0; k <= 16; k++ {
		kb := []byte{byte(k)}
		got := ScalarMult(kb, b)
		if !got.Equal(sum) {
			t.Fatalf("ScalarMult(%d) disagrees with repeated addition", k)
		}
		sum = sum.Add(b)
	}
}

func TestScalarMultDistributes(t *testing.T) {
	// (k1+k2)*B == k1*B + k2*B for small scalars without carries.
	k1 := []byte{0x11, 0x05}
	k2 := []byte{0x22, 0x10}
	k3 := []byte{0x33, 0x15}
	lhs := ScalarBaseMult(k3)
	rhs := ScalarBaseMult(k1).Add(ScalarBaseMult(k2))
	if !lhs.Equal(rhs) {
		t.Fatal("scalar multiplication does not distribute over addition")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for i := 0; i < 20; i++ {
		p := ScalarBaseMult(randomScalar(t))
		enc := p.Encode()
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if !dec.Equal(p) {
			t.Fatal("decode(encode(p)) != p")
		}
		if !bytes.Equal(dec.Encode(), enc) {
			t.Fatal("re-encoding changed bytes")
		}
	}

	// The identity encodes to y=1 and survives the round trip.
	enc := Identity().Encode()
	dec, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode(identity): %v", err)
	}
	if !dec.IsIdentity() {
		t.Fatal("identity lost in round trip")
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
	}{
		{"wrong length", make([]byte, 31)},
		{"empty", nil},
		// y = p is non-canonical.
		{"non-canonical y", []byte{
			0xed, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
			0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
			0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
			0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f,
		}},
		// y = 2 has no corresponding x on the curve.
		{"not on curve", append([]byte{0x02}, make([]byte, 31)...)},
		// y = 1 with the sign bit set encodes "negative zero".
		{"negative zero x", func() []byte {
			b := make([]byte, 32)
			b[0] = 0x01
			b[31] = 0x80
			return b
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.in); !errors.Is(err, ErrInvalidEncoding) {
				t.Errorf("Decode() err = %v, want ErrInvalidEncoding", err)
			}
		})
	}
}

// Statistical smoke test: scalar multiplication timing must not visibly
// correlate with scalar hamming weight. This is a noise-tolerant guard, not
// a hard constant-time proof.
func TestScalarMultTimingVariance(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test skipped in short mode")
	}
	b := Basepoint()
	light := make([]byte, 32) // minimal weight
	light[0] = 1
	heavy := bytes.Repeat([]byte{0xff, 0x7f}, 16) // near-maximal weight

	const rounds = 40
	measure := func(k []byte) time.Duration {
		start := time.Now()
		for i := 0; i < rounds; i++ {
			ScalarMult(k, b)
		}
		return time.Since(start)
	}
	// Warm up.
	measure(light)

	tl := measure(light)
	th := measure(heavy)
	ratio := float64(th) / float64(tl)
	if ratio > 1.5 || ratio < 0.67 {
		t.Errorf("timing ratio heavy/light = %.3f, expected close to 1.0", ratio)
	}
}
