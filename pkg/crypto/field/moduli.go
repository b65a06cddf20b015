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

import "encoding/hex"

// Moduli for the supported curve families. Montgomery constants (n0, RR)
// are precomputed for R = 2^256.
var (
	// P25519 is the Curve25519/Ed25519 base field prime 2^255 - 19.
	P25519 = NewModulus(
		[4]uint64{0xffffffffffffffed, 0xffffffffffffffff, 0xffffffffffffffff, 0x7fffffffffffffff},
		0x86bca1af286bca1b,
		[4]uint64{0x00000000000005a4, 0, 0, 0},
		32,
	)

	// L25519 is the Ed25519 group order 2^252 + 27742317777372353535851937790883648493.
	L25519 = NewModulus(
		[4]uint64{0x5812631a5cf5d3ed, 0x14def9dea2f79cd6, 0x0000000000000000, 0x1000000000000000},
		0xd2b51da312547e1b,
		[4]uint64{0xa40611e3449c0f01, 0xd00e1ba768859347, 0xceec73d217f5be65, 0x0399411b7c309a3d},
		32,
	)

	// P256 is the NIST P-256 base field prime 2^256 - 2^224 + 2^192 + 2^96 - 1.
	P256 = NewModulus(
		[4]uint64{0xffffffffffffffff, 0x00000000ffffffff, 0x0000000000000000, 0xffffffff00000001},
		0x0000000000000001,
		[4]uint64{0x0000000000000003, 0xfffffffbffffffff, 0xfffffffffffffffe, 0x00000004fffffffd},
		32,
	)

	// N256 is the NIST P-256 group order.
	N256 = NewModulus(
		[4]uint64{0xf3b9cac2fc632551, 0xbce6faada7179e84, 0xffffffffffffffff, 0xffffffff00000000},
		0xccd1c8aaee00bc4f,
		[4]uint64{0x83244c95be79eea2, 0x4699799c49bd6fa6, 0x2845b2392b6bec59, 0x66e12d94f3d95620},
		32,
	)
)

// OrderBytesBE returns big-endian canonical encodings of the group orders,
// used by rejection-sampling scalar generation.
var (
	// OrderL25519BE is the Ed25519 group order, big-endian.
	OrderL25519BE = mustHex32("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed")

	// OrderN256BE is the P-256 group order, big-endian.
	OrderN256BE = mustHex32("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551")
)

func mustHex32(s string) []byte {
	out, err := hex.DecodeString(s)
	if err != nil || len(out) != 32 {
		panic("field: bad order constant")
	}
	return out
}
