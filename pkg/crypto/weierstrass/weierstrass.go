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

// Package weierstrass implements the NIST P-256 short Weierstrass curve
// (y^2 = x^3 - 3x + b) and ECDSA signatures with deterministic RFC 6979
// nonces.
//
// Points use Jacobian coordinates (X:Y:Z), x = X/Z^2, y = Y/Z^3, with Z = 0
// marking the point at infinity. Addition resolves the degenerate cases
// (either operand at infinity, doubling, inverse pair) by computing every
// candidate and selecting in constant time, so the scalar-multiplication
// ladder never branches on secret data.
package weierstrass

import (
	"encoding/hex"

	"github.com/jeremyhahn/go-curvetoken/pkg/crypto/field"
)

var (
	fp = field.P256
	sn = field.N256

	// Curve coefficient b and base point, raw little-endian limbs.
	rawB  = field.Element{0x3bce3c3e27d2604b, 0x651d06b0cc53b0f6, 0xb3ebbd55769886bc, 0x5ac635d8aa3a93e7}
	rawGx = field.Element{0xf4a13945d898c296, 0x77037d812deb33a0, 0xf8bce6e563a440f2, 0x6b17d1f2e12c4247}
	rawGy = field.Element{0xcbb6406837bf51f5, 0x2bce33576b315ece, 0x8ee7eb4a7c0f9e16, 0x4fe342e2fe1a7f9b}

	// Fixed public exponents, big-endian.
	expInvertP = mustDecodeExp("ffffffff00000001000000000000000000000000fffffffffffffffffffffffd") // p-2
	expSqrt    = mustDecodeExp("3fffffffc0000000400000000000000000000000400000000000000000000000") // (p+1)/4
	expInvertN = mustDecodeExp("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc63254f") // n-2

	b, gX, gY, three field.Element
)

func init() {
	b = toMont(rawB)
	gX = toMont(rawGx)
	gY = toMont(rawGy)
	three = fp.FromUint64(3)
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
		panic("weierstrass: bad exponent constant")
	}
	return out
}

const (
	// CompressedPointSize is the SEC1 compressed encoding length.
	CompressedPointSize = 33

	// ScalarSize is the big-endian scalar encoding length.
	ScalarSize = 32
)

// Point is a curve point in Jacobian coordinates. The zero value is the
// point at infinity.
type Point struct {
	x, y, z field.Element
}

// Identity returns the point at infinity.
func Identity() Point { return Point{} }

// Basepoint returns the P-256 generator.
func Basepoint() Point {
	return Point{x: gX, y: gY, z: fp.One()}
}

// IsIdentity reports whether p is the point at infinity.
func (p Point) IsIdentity() bool {
	return fp.IsZero(p.z) == 1
}

func selectPoint(v uint64, a, b Point) Point {
	return Point{
		x: field.Select(v, a.x, b.x),
		y: field.Select(v, a.y, b.y),
		z: field.Select(v, a.z, b.z),
	}
}

// Double returns 2p (dbl-2001-b for a=-3). Correctly maps infinity to
// infinity.
func (p Point) Double() Point {
	delta := fp.Square(p.z)
	gamma := fp.Square(p.y)
	beta := fp.Mul(p.x, gamma)
	alpha := fp.Mul(three, fp.Mul(fp.Sub(p.x, delta), fp.Add(p.x, delta)))

	x3 := fp.Sub(fp.Square(alpha), fp.Double(fp.Double(fp.Double(beta))))
	z3 := fp.Sub(fp.Sub(fp.Square(fp.Add(p.y, p.z)), gamma), delta)

	fourBeta := fp.Double(fp.Double(beta))
	eightGamma2 := fp.Double(fp.Double(fp.Double(fp.Square(gamma))))
	y3 := fp.Sub(fp.Mul(alpha, fp.Sub(fourBeta, x3)), eightGamma2)

	return Point{x: x3, y: y3, z: z3}
}

// Add returns p + q (add-2007-bl), resolving the infinity and doubling
// cases by constant-time selection.
func (p Point) Add(q Point) Point {
	z1IsZero := fp.IsZero(p.z)
	z2IsZero := fp.IsZero(q.z)

	z1z1 := fp.Square(p.z)
	z2z2 := fp.Square(q.z)
	u1 := fp.Mul(p.x, z2z2)
	u2 := fp.Mul(q.x, z1z1)
	s1 := fp.Mul(fp.Mul(p.y, q.z), z2z2)
	s2 := fp.Mul(fp.Mul(q.y, p.z), z1z1)

	h := fp.Sub(u2, u1)
	sDiff := fp.Sub(s2, s1)
	xEqual := fp.IsZero(h)
	yEqual := fp.IsZero(sDiff)

	r := fp.Double(sDiff)
	i := fp.Square(fp.Double(h))
	j := fp.Mul(h, i)
	v := fp.Mul(u1, i)

	x3 := fp.Sub(fp.Sub(fp.Square(r), j), fp.Double(v))
	y3 := fp.Sub(fp.Mul(r, fp.Sub(v, x3)), fp.Double(fp.Mul(s1, j)))
	z3 := fp.Mul(fp.Sub(fp.Sub(fp.Square(fp.Add(p.z, q.z)), z1z1), z2z2), h)
	sum := Point{x: x3, y: y3, z: z3}

	// Inverse pair (h == 0, s2 != s1) falls out naturally: z3 == 0.
	result := selectPoint(z1IsZero, q, sum)
	result = selectPoint(z2IsZero, p, result)
	isDoubling := xEqual & yEqual & (1 - z1IsZero) & (1 - z2IsZero)
	return selectPoint(isDoubling, p.Double(), result)
}

// ScalarMult returns k*p for a 32-byte big-endian scalar. The ladder runs
// one doubling and one addition per bit with constant-time selection.
func ScalarMult(k []byte, p Point) Point {
	r := Identity()
	for _, by := range k {
		for bit := 7; bit >= 0; bit-- {
			r = r.Double()
			sum := r.Add(p)
			r = selectPoint(uint64(by>>uint(bit))&1, sum, r)
		}
	}
	return r
}

// ScalarBaseMult returns k*G for a 32-byte big-endian scalar.
func ScalarBaseMult(k []byte) Point {
	return ScalarMult(k, Basepoint())
}

// Affine returns the affine coordinates as canonical big-endian bytes.
// Fails with ErrPointAtInfinityRejected for the identity, which has no
// affine representation.
func (p Point) Affine() (xOut, yOut []byte, err error) {
	if p.IsIdentity() {
		return nil, nil, ErrPointAtInfinityRejected
	}
	zInv := fp.Invert(p.z, expInvertP)
	zInv2 := fp.Square(zInv)
	x := fp.Mul(p.x, zInv2)
	y := fp.Mul(p.y, fp.Mul(zInv2, zInv))
	return fp.BytesBE(x), fp.BytesBE(y), nil
}

// Encode returns the 33-byte SEC1 compressed encoding (02/03 prefix plus
// big-endian x). The identity is not encodable.
func (p Point) Encode() ([]byte, error) {
	x, y, err := p.Affine()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, CompressedPointSize)
	out = append(out, 2|(y[31]&1))
	return append(out, x...), nil
}

// Decode parses a compressed point, failing with ErrInvalidEncoding when
// the bytes do not describe a point on the curve.
func Decode(data []byte) (Point, error) {
	if len(data) != CompressedPointSize || (data[0] != 2 && data[0] != 3) {
		return Point{}, ErrInvalidEncoding
	}
	x, ok := fp.SetBytesBE(data[1:])
	if ok != 1 {
		return Point{}, ErrInvalidEncoding
	}

	// y^2 = x^3 - 3x + b
	rhs := fp.Add(fp.Sub(fp.Mul(fp.Square(x), x), fp.Mul(three, x)), b)
	y := fp.Pow(rhs, expSqrt)
	if fp.Equal(fp.Square(y), rhs) != 1 {
		return Point{}, ErrInvalidEncoding
	}

	wantOdd := uint64(data[0] & 1)
	haveOdd := uint64(fp.BytesBE(y)[31] & 1)
	y = field.Select(wantOdd^haveOdd, fp.Neg(y), y)

	return Point{x: x, y: y, z: fp.One()}, nil
}

// IsOnCurve reports whether p satisfies the Jacobian curve equation
// Y^2 = X^3 - 3*X*Z^4 + b*Z^6. The identity is a group member.
func (p Point) IsOnCurve() bool {
	if p.IsIdentity() {
		return true
	}
	y2 := fp.Square(p.y)
	x3 := fp.Mul(fp.Square(p.x), p.x)
	z2 := fp.Square(p.z)
	z4 := fp.Square(z2)
	rhs := fp.Add(fp.Sub(x3, fp.Mul(three, fp.Mul(p.x, z4))), fp.Mul(b, fp.Mul(z4, z2)))
	return fp.Equal(y2, rhs) == 1
}

// Equal reports whether p and q represent the same affine point.
func (p Point) Equal(q Point) bool {
	pInf, qInf := p.IsIdentity(), q.IsIdentity()
	if pInf || qInf {
		return pInf == qInf
	}
	// Cross-multiply: X1*Z2^2 == X2*Z1^2 and Y1*Z2^3 == Y2*Z1^3.
	z1z1 := fp.Square(p.z)
	z2z2 := fp.Square(q.z)
	xeq := fp.Equal(fp.Mul(p.x, z2z2), fp.Mul(q.x, z1z1))
	yeq := fp.Equal(fp.Mul(p.y, fp.Mul(z2z2, q.z)), fp.Mul(q.y, fp.Mul(z1z1, p.z)))
	return xeq&yeq == 1
}
