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

// Package field implements constant-time modular arithmetic over the
// 256-bit prime fields and scalar groups used by the supported curves.
//
// Elements are held in Montgomery form across four 64-bit limbs and a
// single CIOS Montgomery multiplier serves every modulus. All operations
// whose inputs may be secret run in time independent of operand value:
// no data-dependent branches, no data-dependent memory access.
//
// The zero value of Element is the field's additive identity.
package field

import "math/bits"

// Element is a field element in Montgomery form. Limbs are little-endian:
// limb 0 holds the least significant 64 bits.
//
// An Element is only meaningful relative to the Modulus that produced it;
// mixing elements across moduli yields garbage, not panics.
type Element [4]uint64

// Modulus describes one odd 256-bit (or smaller) modulus together with the
// precomputed Montgomery constants for R = 2^256.
type Modulus struct {
	// p holds the modulus limbs, little-endian.
	p [4]uint64

	// n0 = -p^-1 mod 2^64.
	n0 uint64

	// rr = R^2 mod p, used to convert into Montgomery form.
	rr Element

	// one = R mod p, the multiplicative identity in Montgomery form.
	one Element

	// size is the canonical encoding length in bytes.
	size int
}

// NewModulus constructs a Modulus from precomputed little-endian limbs.
// The caller supplies n0 and rr; they are not derived at runtime so the
// package stays free of big-integer machinery.
func NewModulus(p [4]uint64, n0 uint64, rr [4]uint64, size int) *Modulus {
	m := &Modulus{p: p, n0: n0, rr: Element(rr), size: size}
	// R mod p = montMul(RR, 1).
	m.one = m.montMul(m.rr, Element{1, 0, 0, 0})
	return m
}

// Size returns the canonical encoding length in bytes.
func (m *Modulus) Size() int { return m.size }

// One returns the multiplicative identity.
func (m *Modulus) One() Element { return m.one }

// FromUint64 converts a small public constant into Montgomery form.
func (m *Modulus) FromUint64(v uint64) Element {
	return m.montMul(Element{v, 0, 0, 0}, m.rr)
}

// madd computes t + a*b + c, returning the new t limb and carry word.
// The carry chain cannot overflow: a*b's high word is at most 2^64-2.
func madd(a, b, t, c uint64) (uint64, uint64) {
	hi, lo := bits.Mul64(a, b)
	lo2, carry := bits.Add64(lo, t, 0)
	hi2, _ := bits.Add64(hi, 0, carry)
	s, carry := bits.Add64(lo2, c, 0)
	c2, _ := bits.Add64(hi2, 0, carry)
	return s, c2
}

// montMul computes a*b*R^-1 mod p using the CIOS method.
func (m *Modulus) montMul(a, b Element) Element {
	var t [4]uint64
	var tex, tex2 uint64

	for i := 0; i < 4; i++ {
		var c uint64
		for j := 0; j < 4; j++ {
			t[j], c = madd(a[i], b[j], t[j], c)
		}
		s, c1 := bits.Add64(tex, c, 0)
		tex = s
		tex2 += c1

		q := t[0] * m.n0
		c = 0
		for j := 0; j < 4; j++ {
			t[j], c = madd(q, m.p[j], t[j], c)
		}
		s, c1 = bits.Add64(tex, c, 0)

		t[0], t[1], t[2], t[3] = t[1], t[2], t[3], s
		tex = tex2 + c1
		tex2 = 0
	}

	// Result is t + tex*2^256 with tex <= 1; subtract p once if needed.
	var r Element
	var borrow uint64
	for j := 0; j < 4; j++ {
		r[j], borrow = bits.Sub64(t[j], m.p[j], borrow)
	}
	// Keep the subtracted value when it did not underflow, or when the
	// extension word is set (t >= 2^256 > p).
	keep := (1 - borrow) | tex
	return Select(keep, r, Element(t))
}

// Mul returns a*b.
func (m *Modulus) Mul(a, b Element) Element { return m.montMul(a, b) }

// Square returns a*a.
func (m *Modulus) Square(a Element) Element { return m.montMul(a, a) }

// Add returns a+b.
func (m *Modulus) Add(a, b Element) Element {
	var s Element
	var carry uint64
	for j := 0; j < 4; j++ {
		s[j], carry = bits.Add64(a[j], b[j], carry)
	}
	var r Element
	var borrow uint64
	for j := 0; j < 4; j++ {
		r[j], borrow = bits.Sub64(s[j], m.p[j], borrow)
	}
	keep := (1 - borrow) | carry
	return Select(keep, r, s)
}

// Sub returns a-b.
func (m *Modulus) Sub(a, b Element) Element {
	var d Element
	var borrow uint64
	for j := 0; j < 4; j++ {
		d[j], borrow = bits.Sub64(a[j], b[j], borrow)
	}
	// Add p back when the subtraction underflowed.
	mask := -borrow
	var r Element
	var carry uint64
	for j := 0; j < 4; j++ {
		r[j], carry = bits.Add64(d[j], m.p[j]&mask, carry)
	}
	return r
}

// Neg returns -a.
func (m *Modulus) Neg(a Element) Element {
	return m.Sub(Element{}, a)
}

// Double returns 2*a.
func (m *Modulus) Double(a Element) Element { return m.Add(a, a) }

// Pow returns a^e where e is a fixed-length big-endian exponent. The
// exponent is public (field constants such as p-2); only the base is
// treated as secret, and the square-and-multiply schedule depends solely
// on the exponent.
func (m *Modulus) Pow(a Element, exp []byte) Element {
	r := m.one
	for _, b := range exp {
		for bit := 7; bit >= 0; bit-- {
			r = m.montMul(r, r)
			t := m.montMul(r, a)
			r = Select(uint64(b>>uint(bit))&1, t, r)
		}
	}
	return r
}

// Invert returns a^-1 via Fermat's little theorem. The inverse of zero is
// zero, a stable sentinel the callers check for explicitly.
func (m *Modulus) Invert(a Element, pMinus2 []byte) Element {
	return m.Pow(a, pMinus2)
}

// IsZero returns 1 if a == 0, in constant time.
func (m *Modulus) IsZero(a Element) uint64 {
	v := a[0] | a[1] | a[2] | a[3]
	return 1 - ((v | -v) >> 63)
}

// Equal returns 1 if a == b, in constant time.
func (m *Modulus) Equal(a, b Element) uint64 {
	v := (a[0] ^ b[0]) | (a[1] ^ b[1]) | (a[2] ^ b[2]) | (a[3] ^ b[3])
	return 1 - ((v | -v) >> 63)
}

// Select returns a when v == 1 and b when v == 0, in constant time.
func Select(v uint64, a, b Element) Element {
	mask := -v
	var r Element
	for j := 0; j < 4; j++ {
		r[j] = (a[j] & mask) | (b[j] &^ mask)
	}
	return r
}

// Swap exchanges a and b when v == 1, in constant time.
func Swap(v uint64, a, b *Element) {
	mask := -v
	for j := 0; j < 4; j++ {
		x := (a[j] ^ b[j]) & mask
		a[j] ^= x
		b[j] ^= x
	}
}

// reduceRaw converts raw little-endian limbs (any 256-bit value) into a
// canonical residue, still outside Montgomery form. Used during decoding
// where inputs may be up to 2^256-1.
func (m *Modulus) reduceRaw(a Element) Element {
	// montMul(a, RR) = a*R mod p; montMul(that, 1) = a mod p.
	t := m.montMul(a, m.rr)
	return m.montMul(t, Element{1, 0, 0, 0})
}

// isCanonical returns 1 when raw limbs a are strictly less than p.
func (m *Modulus) isCanonical(a Element) uint64 {
	var borrow uint64
	for j := 0; j < 4; j++ {
		_, borrow = bits.Sub64(a[j], m.p[j], borrow)
	}
	return borrow
}

// SetBytesLE decodes a canonical little-endian encoding. Returns ok == 0
// when the value is not fully reduced; the returned element is then the
// reduced residue, which callers must discard unless they accept
// non-canonical input.
func (m *Modulus) SetBytesLE(b []byte) (Element, uint64) {
	var raw Element
	for i := 0; i < len(b) && i < 32; i++ {
		raw[i/8] |= uint64(b[i]) << (8 * uint(i%8))
	}
	ok := m.isCanonical(raw)
	return m.montMul(m.reduceRaw(raw), m.rr), ok
}

// SetBytesBE decodes a canonical big-endian encoding.
func (m *Modulus) SetBytesBE(b []byte) (Element, uint64) {
	le := make([]byte, len(b))
	for i := range b {
		le[i] = b[len(b)-1-i]
	}
	return m.SetBytesLE(le)
}

// BytesLE returns the canonical little-endian encoding of a.
func (m *Modulus) BytesLE(a Element) []byte {
	raw := m.montMul(a, Element{1, 0, 0, 0})
	out := make([]byte, m.size)
	for i := 0; i < m.size && i < 32; i++ {
		out[i] = byte(raw[i/8] >> (8 * uint(i%8)))
	}
	return out
}

// BytesBE returns the canonical big-endian encoding of a.
func (m *Modulus) BytesBE(a Element) []byte {
	le := m.BytesLE(a)
	for i, j := 0, len(le)-1; i < j; i, j = i+1, j-1 {
		le[i], le[j] = le[j], le[i]
	}
	return le
}

// SetWideBytesBE reduces an arbitrary-length big-endian byte string modulo
// p. Used for folding 512-bit hash outputs into the scalar group. Runs in
// time dependent only on the input length.
func (m *Modulus) SetWideBytesBE(b []byte) Element {
	acc := Element{}
	for _, by := range b {
		// acc = acc*256 + by
		for i := 0; i < 8; i++ {
			acc = m.Add(acc, acc)
		}
		acc = m.Add(acc, m.FromUint64(uint64(by)))
	}
	return acc
}

// SetWideBytesLE is SetWideBytesBE over a little-endian input.
func (m *Modulus) SetWideBytesLE(b []byte) Element {
	be := make([]byte, len(b))
	for i := range b {
		be[i] = b[len(b)-1-i]
	}
	return m.SetWideBytesBE(be)
}

// Bit returns bit i (0 = least significant) of the raw little-endian
// byte string b, or 0 when out of range.
func Bit(b []byte, i int) uint64 {
	if i < 0 || i >= len(b)*8 {
		return 0
	}
	return uint64(b[i/8]>>(uint(i)%8)) & 1
}
