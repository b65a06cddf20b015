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

// Package jwt implements JSON Web Token encoding and decoding on top of
// the module's own curve arithmetic. Asymmetric tokens never touch the
// standard library's signers: ES256 runs on the weierstrass package and
// EdDSA on the edwards package.
//
// # Supported Algorithms
//
//   - HS256, HS384, HS512 (HMAC with SHA-2)
//   - ES256 (ECDSA over P-256 with SHA-256, raw r||s signatures)
//   - EdDSA (Ed25519 per RFC 8037)
//
// The "none" algorithm is rejected unconditionally.
//
// # Encoding
//
//	key, _ := keypair.Generate(types.CurveEd25519, rand.Reader)
//	claims := jwt.NewClaims("issuer", "user123", []string{"my-app"}, time.Hour)
//	token, err := jwt.Encode(claims, types.AlgEdDSA, key, "")
//
// Claim JSON is canonical: object keys are emitted in sorted order, so
// encoding the same claims twice yields byte-identical tokens.
//
// # Decoding
//
// Decoding requires an explicit algorithm allow-list. A token whose
// header algorithm is not on the list is rejected before any signature
// work, which blocks algorithm-confusion attacks (an HMAC token "signed"
// with a public key, or an asymmetric token downgraded to HMAC):
//
//	decoded, err := jwt.Decode(token, key.Public(), &jwt.DecodeOptions{
//	    AllowedAlgorithms: []types.Algorithm{types.AlgEdDSA},
//	    VerifyExpiry:      true,
//	    ExpectedIssuer:    "issuer",
//	    ExpectedAudience:  "my-app",
//	})
//
// Signature verification always runs before claim validation; a token
// with a bad signature reports ErrInvalidSignature even if it is also
// expired.
//
// # Thread Safety
//
// All types in this package are safe for concurrent use.
package jwt
