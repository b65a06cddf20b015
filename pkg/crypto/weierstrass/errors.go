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

import "errors"

var (
	// ErrInvalidEncoding indicates a byte string that does not decode to a
	// point on the curve.
	ErrInvalidEncoding = errors.New("weierstrass: invalid point encoding")

	// ErrPointAtInfinityRejected indicates the point at infinity where a
	// finite point is required.
	ErrPointAtInfinityRejected = errors.New("weierstrass: point at infinity rejected")

	// ErrInvalidScalar indicates a private scalar outside [1, n-1].
	ErrInvalidScalar = errors.New("weierstrass: invalid scalar")

	// ErrInvalidPublicKey indicates a public key that failed to decode.
	ErrInvalidPublicKey = errors.New("weierstrass: invalid public key")

	// ErrMalformedSignature indicates a signature of the wrong length.
	ErrMalformedSignature = errors.New("weierstrass: malformed signature")

	// ErrVerificationFailed indicates a well-formed signature that does not
	// verify against the message and public key.
	ErrVerificationFailed = errors.New("weierstrass: signature verification failed")
)
