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

package jwk

import "errors"

var (
	// ErrUnsupportedKeyType indicates a kty or crv outside the supported
	// Ed25519 and P-256 set.
	ErrUnsupportedKeyType = errors.New("jwk: unsupported key type")

	// ErrInvalidKey indicates key material that does not decode to a
	// valid curve point.
	ErrInvalidKey = errors.New("jwk: invalid key material")
)
