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

import "errors"

var (
	// ErrInvalidEncoding indicates a byte string that does not decode to a
	// point on the curve.
	ErrInvalidEncoding = errors.New("edwards: invalid point encoding")

	// ErrInvalidSeed indicates a private key seed of the wrong length.
	ErrInvalidSeed = errors.New("edwards: invalid seed length")

	// ErrInvalidPublicKey indicates a public key that failed to decode.
	ErrInvalidPublicKey = errors.New("edwards: invalid public key")

	// ErrMalformedSignature indicates a signature of the wrong length.
	ErrMalformedSignature = errors.New("edwards: malformed signature")

	// ErrVerificationFailed indicates a well-formed signature that does not
	// verify against the message and public key.
	ErrVerificationFailed = errors.New("edwards: signature verification failed")
)
