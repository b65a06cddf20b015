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

package jwt

import "errors"

var (
	// ErrMalformedToken indicates a token that is not three base64url
	// segments of valid JSON.
	ErrMalformedToken = errors.New("jwt: malformed token")

	// ErrUnsupportedAlgorithm indicates a header algorithm outside the
	// decode allow-list, or one the module does not implement.
	ErrUnsupportedAlgorithm = errors.New("jwt: unsupported algorithm")

	// ErrInvalidKey indicates key material of the wrong type or length
	// for the requested algorithm.
	ErrInvalidKey = errors.New("jwt: invalid key for algorithm")

	// ErrInvalidSignature indicates a signature that does not verify.
	ErrInvalidSignature = errors.New("jwt: invalid signature")

	// ErrTokenExpired indicates an exp claim in the past.
	ErrTokenExpired = errors.New("jwt: token expired")

	// ErrTokenNotYetValid indicates an nbf claim in the future.
	ErrTokenNotYetValid = errors.New("jwt: token not yet valid")

	// ErrIssuerMismatch indicates an iss claim that does not match the
	// expected issuer.
	ErrIssuerMismatch = errors.New("jwt: issuer mismatch")

	// ErrAudienceMismatch indicates an aud claim that does not contain
	// the expected audience.
	ErrAudienceMismatch = errors.New("jwt: audience mismatch")
)
