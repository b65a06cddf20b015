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

package x25519

import "errors"

var (
	// ErrInvalidKeySize indicates key material of the wrong length.
	ErrInvalidKeySize = errors.New("x25519: invalid key size")

	// ErrInvalidPeerKey indicates a peer public key whose shared secret
	// would be all zeros (a small-order point).
	ErrInvalidPeerKey = errors.New("x25519: invalid peer public key")

	// ErrEmptySharedSecret indicates key derivation from an empty secret.
	ErrEmptySharedSecret = errors.New("x25519: shared secret cannot be empty")

	// ErrInvalidKeyLength indicates a derived key length outside the
	// HKDF-SHA256 output range.
	ErrInvalidKeyLength = errors.New("x25519: invalid derived key length")
)
