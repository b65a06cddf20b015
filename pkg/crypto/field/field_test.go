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

package field

import (
	"bytes"
	"crypto/rand"
	"math/big"
	"testing"
)

var testModuli = []struct {
	name string
	m    *Modulus
	p    *big.Int
}{
	{"p25519", P25519, bigFromHex("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed")},
	{"L25519", L25519, bigFromHex("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed")},
	{"p256", P256, bigFromHex("ffffffff00000001000000000000000000000000ffffffffffffffffffffffff")},
	{"n256", N256, bigFromHex("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551")},
}

func bigFromHex(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("bad hex in test")
	}
	return v
}

func randomBig(t *testing.T, p *big.Int) *big.Int {
	t.Helper()
	v, err := rand.Int(rand.Reader, p)
	if err != nil {
		t.Fatalf("rand.Int: %v", err)
	}
	return v
}

func fromBig(t *testing.T, m *Modulus, v *big.Int) Element {
	t.Helper()
	b := v.FillBytes(make([]byte, 32))
	e, ok := m.SetBytesBE(b)
	if ok != 1 {
		t.Fatalf("SetBytesBE rejected canonical value %v", v)
	}
	return e
}

func toBig(m *Modulus, e Element) *big.Int {
	return new(big.Int).SetBytes(m.BytesBE(e))
}

func TestArithmeticAgainstBigInt(t *testing.T) {
	for _, tm := range testModuli {
		t.Run(tm.name, func(t *testing.T) {
			edge := []*big.Int{
				big.NewInt(0),
				big.NewInt(1),
				new(big.Int).Sub(tm.p, big.NewInt(1)),
				new(big.Int).Sub(tm.p, big.NewInt(2)),
			}
			var cases [][2]*big.Int
			for _, a := range edge {
				for _, b := range edge {
					cases = append(cases, [2]*big.Int{a, b})
				}
			}
			for i := 0; i < 200; i++ {
				cases = append(cases, [2]*big.Int{randomBig(t, tm.p), randomBig(t, tm.p)})
			}

			for _, c := range cases {
				a, b := c[0], c[1]
				ea := fromBig(t, tm.m, a)
				eb := fromBig(t, tm.m, b)

				if got, want := toBig(tm.m, tm.m.Add(ea, eb)), new(big.Int).Mod(new(big.Int).Add(a, b), tm.p); got.Cmp(want) != 0 {
					t.Fatalf("Add(%v,%v) = %v, want %v", a, b, got, want)
				}
				if got, want := toBig(tm.m, tm.m.Sub(ea, eb)), new(big.Int).Mod(new(big.Int).Sub(a, b), tm.p); got.Cmp(want) != 0 {
					t.Fatalf("Sub(%v,%v) = %v, want %v", a, b, got, want)
				}
				if got, want := toBig(tm.m, tm.m.Mul(ea, eb)), new(big.Int).Mod(new(big.Int).Mul(a, b), tm.p); got.Cmp(want) != 0 {
					t.Fatalf("Mul(%v,%v) = %v, want %v", a, b, got, want)
				}
				if got, want := toBig(tm.m, tm.m.Square(ea)), new(big.Int).Mod(new(big.Int).Mul(a, a), tm.p); got.Cmp(want) != 0 {
					t.Fatalf("Square(%v) = %v, want %v", a, got, want)
				}
			}
		})
	}
}

func TestInvert(t *testing.T) {
	for _, tm := range testModuli {
		t.Run(tm.name, func(t *testing.T) {
			pMinus2 := new(big.Int).Sub(tm.p, big.NewInt(2)).FillBytes(make([]byte, 32))
			for i := 0; i < 50; i++ {
				a := randomBig(t, tm.p)
				if a.Sign() == 0 {
					continue
				}
				ea := fromBig(t, tm.m, a)
				inv := tm.m.Invert(ea, pMinus2)
				prod := toBig(tm.m, tm.m.Mul(ea, inv))
				if prod.Cmp(big.NewInt(1)) != 0 {
					t.Fatalf("a * a^-1 = %v, want 1 (a=%v)", prod, a)
				}
			}

			// Inversion of zero yields the zero sentinel, never panics.
			zero := tm.m.Invert(Element{}, pMinus2)
			if tm.m.IsZero(zero) != 1 {
				t.Fatal("Invert(0) is not the zero sentinel")
			}
		})
	}
}

func TestSetBytesCanonicality(t *testing.T) {
	for _, tm := range testModuli {
		t.Run(tm.name, func(t *testing.T) {
			// p itself is not canonical.
			if _, ok := tm.m.SetBytesBE(tm.p.FillBytes(make([]byte, 32))); ok != 0 {
				t.Error("SetBytesBE accepted p as canonical")
			}
			// p-1 is.
			pm1 := new(big.Int).Sub(tm.p, big.NewInt(1))
			if _, ok := tm.m.SetBytesBE(pm1.FillBytes(make([]byte, 32))); ok != 1 {
				t.Error("SetBytesBE rejected p-1")
			}
			// All-ones is not.
			ff := bytes.Repeat([]byte{0xff}, 32)
			if _, ok := tm.m.SetBytesBE(ff); ok != 0 {
				t.Error("SetBytesBE accepted 2^256-1 as canonical")
			}
		})
	}
}

func TestBytesRoundTrip(t *testing.T) {
	for _, tm := range testModuli {
		t.Run(tm.name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				a := randomBig(t, tm.p)
				ea := fromBig(t, tm.m, a)

				be := tm.m.BytesBE(ea)
				eb, ok := tm.m.SetBytesBE(be)
				if ok != 1 || tm.m.Equal(ea, eb) != 1 {
					t.Fatalf("big-endian round trip failed for %v", a)
				}

				le := tm.m.BytesLE(ea)
				ec, ok := tm.m.SetBytesLE(le)
				if ok != 1 || tm.m.Equal(ea, ec) != 1 {
					t.Fatalf("little-endian round trip failed for %v", a)
				}
			}
		})
	}
}

func TestSetWideBytes(t *testing.T) {
	for _, tm := range testModuli {
		t.Run(tm.name, func(t *testing.T) {
			for i := 0; i < 30; i++ {
				wide := make([]byte, 64)
				if _, err := rand.Read(wide); err != nil {
					t.Fatalf("rand.Read: %v", err)
				}
				got := toBig(tm.m, tm.m.SetWideBytesBE(wide))
				want := new(big.Int).Mod(new(big.Int).SetBytes(wide), tm.p)
				if got.Cmp(want) != 0 {
					t.Fatalf("SetWideBytesBE = %v, want %v", got, want)
				}

				gotLE := toBig(tm.m, tm.m.SetWideBytesLE(wide))
				rev := make([]byte, 64)
				for j := range wide {
					rev[j] = wide[63-j]
				}
				wantLE := new(big.Int).Mod(new(big.Int).SetBytes(rev), tm.p)
				if gotLE.Cmp(wantLE) != 0 {
					t.Fatalf("SetWideBytesLE = %v, want %v", gotLE, wantLE)
				}
			}
		})
	}
}

func TestSelectAndSwap(t *testing.T) {
	a := Element{1, 2, 3, 4}
	b := Element{5, 6, 7, 8}

	if got := Select(1, a, b); got != a {
		t.Errorf("Select(1) = %v, want a", got)
	}
	if got := Select(0, a, b); got != b {
		t.Errorf("Select(0) = %v, want b", got)
	}

	x, y := a, b
	Swap(0, &x, &y)
	if x != a || y != b {
		t.Error("Swap(0) modified operands")
	}
	Swap(1, &x, &y)
	if x != b || y != a {
		t.Error("Swap(1) did not exchange operands")
	}
}

func TestEqualAndIsZero(t *testing.T) {
	m := P25519
	one := m.One()
	if m.IsZero(Element{}) != 1 {
		t.Error("IsZero(0) = 0")
	}
	if m.IsZero(one) != 0 {
		t.Error("IsZero(1) = 1")
	}
	if m.Equal(one, one) != 1 {
		t.Error("Equal(1,1) = 0")
	}
	if m.Equal(one, Element{}) != 0 {
		t.Error("Equal(1,0) = 1")
	}
}
