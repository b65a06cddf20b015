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

// Package edwards implements the twisted Edwards curve underlying Ed25519
// (-x^2 + y^2 = 1 + d*x^2*y^2 over GF(2^255-19)) together with EdDSA
// signatures per RFC 8032.
//
// Points use extended coordinates (X:Y:Z:T) with T = XY/Z. Addition is the
// unified a=-1 formula, valid for doubling and for the identity, so scalar
// multiplication can run a branch-free double-and-add-always ladder.
package edwards

import (
	"encoding/hex"

	"github.com/jeremyhahn/go-curvetoken/pkg/crypto/field"
)

var (
	fp = field.P25519
	sc = field.L25519

	// d = -121665/121666 mod p.
	constD = field.Element{0x75eb4dca135978a3, 0x00700a4d4141d8ab, 0x8cc740797779e898, 0x52036cee2b6ffe73}

	// 2d mod p.
	constD2 = field.Element{0xebd69b9426b2f159, 0x00e0149a8283b156, 0x198e80f2eef3d130, 0x2406d9dc56dffce7}

	// sqrt(-1) = 2^((p-1)/4) mod p.
	constSqrtM1 = field.Element{0xc4ee1b274a0ea0b0, 0x2f431806ad2fe478, 0x2b4d00993dfbd7a7, 0x2b8324804fc1df0b}

	// Base point (x, 4/5) with x even.
	baseX = field.Element{0xc9562d608f25d51a, 0x692cc7609525a7b2, 0xc0a4e231fdd6dc5c, 0x216936d3cd6e53fe}
	baseY = field.Element{0x6666666666666658, 0x6666666666666666, 0x6666666666666666, 0x6666666666666666}

	// Fixed public exponents, big-endian.
	expInvert  = mustDecodeExp("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffeb") // p-2
	expSqrtCnd = mustDecodeExp("0ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffd") // (p-5)/8

	d, d2, sqrtM1, bX, bY field.Element
)

func init() {
	// Raw little-endian limbs above are plain residues; convert once into
	// Montgomery form.
	d = toMont(constD)
	d2 = toMont(constD2)
	sqrtM1 = toMont(constSqrtM1)
	bX = toMont(baseX)
	bY = toMont(baseY)
}

func toMont(raw field.Element) field.Element {
	le := make([]byte, 32)
	for i := 0; i < 32; i++ {
		le[i] = byte(raw[i/8] >> (8 * uint(i%8)))
	}
	e, _ := fp.SetBytesLE(le)
	return e
}

func mustDecodeExp(s string) []byte {
	out, err := hex.DecodeString(s)
	if err != nil {
		panic("edwards: bad exponent constant")
	}
	return out
}

// Point is a curve point in extended coordinates. The zero value is not a
// valid point; use Identity or Basepoint.
type Point struct {
	x, y, z, t field.Element
}

// Identity returns the neutral element (0, 1).
func Identity() Point {
	return Point{y: fp.One(), z: fp.One()}
}

// Basepoint returns the Ed25519 base point.
func Basepoint() Point {
	return Point{x: bX, y: bY, z: fp.One(), t: fp.Mul(bX, bY)}
}

// Add returns p + q using the unified extended-coordinate formula
// (add-2008-hwcd-3 with a=-1). Valid for all inputs, including p == q
// and the identity.
func (p Point) Add(q Point) Point {
	a := fp.Mul(fp.Sub(p.y, p.x), fp.Sub(q.y, q.x))
	b := fp.Mul(fp.Add(p.y, p.x), fp.Add(q.y, q.x))
	c := fp.Mul(fp.Mul(p.t, d2), q.t)
	dd := fp.Double(fp.Mul(p.z, q.z))
	e := fp.Sub(b, a)
	f := fp.Sub(dd, c)
	g := fp.Add(dd, c)
	h := fp.Add(b, a)
	return Point{
		x: fp.Mul(e, f),
		y: fp.Mul(g, h),
		z: fp.Mul(f, g),
		t: fp.Mul(e, h),
	}
}

// Double returns 2p (dbl-2008-hwcd with a=-1).
func (p Point) Double() Point {
	a := fp.Square(p.x)
	b := fp.Square(p.y)
	c := fp.Double(fp.Square(p.z))
	dd := fp.Neg(a)
	e := fp.Sub(fp.Sub(fp.Square(fp.Add(p.x, p.y)), a), b)
	g := fp.Add(dd, b)
	f := fp.Sub(g, c)
	h := fp.Sub(dd, b)
	return Point{
		x: fp.Mul(e, f),
		y: fp.Mul(g, h),
		z: fp.Mul(f, g),
		t: fp.Mul(e, h),
	}
}

// ScalarMult returns k*p for a little-endian scalar k. The ladder performs
// a doubling and an addition for every one of the 256 bit positions and
// selects results in constant time, so timing is independent of k.
func ScalarMult(k []byte, p Point) Point {
	r := Identity()
	for i := 255; i >= 0; i-- {
		r = r.Double()
		sum := r.Add(p)
		bit := field.Bit(k, i)
		r.x = field.Select(bit, sum.x, r.x)
		r.y = field.Select(bit, sum.y, r.y)
		r.z = field.Select(bit, sum.z, r.z)
		r.t = field.Select(bit, sum.t, r.t)
	}
	return r
}

// ScalarBaseMult returns k*B for a little-endian scalar k.
func ScalarBaseMult(k []byte) Point {
	return ScalarMult(k, Basepoint())
}

// Encode returns the 32-byte compressed encoding: little-endian y with the
// sign of x in the top bit.
func (p Point) Encode() []byte {
	zInv := fp.Invert(p.z, expInvert)
	x := fp.Mul(p.x, zInv)
	y := fp.Mul(p.y, zInv)
	out := fp.BytesLE(y)
	out[31] |= byte(fp.BytesLE(x)[0]&1) << 7
	return out
}

// Decode parses a compressed point. It fails with ErrInvalidEncoding when
// the input has the wrong length, encodes a non-canonical y, or does not
// correspond to a point on the curve.
func Decode(b []byte) (Point, error) {
	if len(b) != 32 {
		return Point{}, ErrInvalidEncoding
	}
	var yb [32]byte
	copy(yb[:], b)
	sign := uint64(yb[31] >> 7)
	yb[31] &= 0x7f

	y, ok := fp.SetBytesLE(yb[:])
	if ok != 1 {
		return Point{}, ErrInvalidEncoding
	}

	// x^2 = (y^2 - 1) / (d*y^2 + 1)
	y2 := fp.Square(y)
	u := fp.Sub(y2, fp.One())
	v := fp.Add(fp.Mul(d, y2), fp.One())

	// Candidate root x = u*v^3 * (u*v^7)^((p-5)/8).
	v2 := fp.Square(v)
	v3 := fp.Mul(v2, v)
	v7 := fp.Mul(fp.Square(v3), v)
	x := fp.Mul(fp.Mul(u, v3), fp.Pow(fp.Mul(u, v7), expSqrtCnd))

	vx2 := fp.Mul(v, fp.Square(x))
	correct := fp.Equal(vx2, u)
	flipped := fp.Equal(vx2, fp.Neg(u))
	x = field.Select(flipped, fp.Mul(x, sqrtM1), x)
	if correct|flipped != 1 {
		return Point{}, ErrInvalidEncoding
	}

	xIsZero := fp.IsZero(x)
	if xIsZero == 1 && sign == 1 {
		return Point{}, ErrInvalidEncoding
	}
	parity := uint64(fp.BytesLE(x)[0] & 1)
	x = field.Select(parity^sign, fp.Neg(x), x)

	return Point{x: x, y: y, z: fp.One(), t: fp.Mul(x, y)}, nil
}

// IsOnCurve reports whether p satisfies the curve equation and the
// extended-coordinate invariant T*Z = X*Y.
func (p Point) IsOnCurve() bool {
	// With T = XY/Z the affine equation becomes Y^2 - X^2 == Z^2 + d*T^2.
	x2 := fp.Square(p.x)
	y2 := fp.Square(p.y)
	z2 := fp.Square(p.z)
	lhs := fp.Sub(y2, x2)
	rhs := fp.Add(z2, fp.Mul(d, fp.Square(p.t)))
	tz := fp.Mul(p.t, p.z)
	xy := fp.Mul(p.x, p.y)
	return fp.Equal(lhs, rhs)&fp.Equal(tz, xy) == 1
}

// IsIdentity reports whether p is the neutral element.
func (p Point) IsIdentity() bool {
	return fp.IsZero(p.x)&fp.Equal(p.y, p.z) == 1
}

// Equal reports whether p and q represent the same affine point.
func (p Point) Equal(q Point) bool {
	a := fp.Equal(fp.Mul(p.x, q.z), fp.Mul(q.x, p.z))
	b := fp.Equal(fp.Mul(p.y, q.z), fp.Mul(q.y, p.z))
	return a&b == 1
}
