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

package ecdh

import "errors"

var (
	// ErrUnsupportedCurve indicates a curve with no key agreement
	// implementation.
	ErrUnsupportedCurve = errors.New("ecdh: unsupported curve")

	// ErrCurveMismatch indicates a key used with the wrong curve's
	// implementation.
	ErrCurveMismatch = errors.New("ecdh: key curve mismatch")

	// ErrInvalidPeerKey indicates a peer public key that failed validation:
	// undecodable, off-curve, the identity, or a small-order point.
	ErrInvalidPeerKey = errors.New("ecdh: invalid peer public key")

	// ErrEmptySharedSecret indicates key derivation from an empty secret.
	ErrEmptySharedSecret = errors.New("ecdh: shared secret cannot be empty")

	// ErrInvalidKeyLength indicates a derived key length outside the
	// HKDF-SHA256 output range.
	ErrInvalidKeyLength = errors.New("ecdh: invalid derived key length")
)
