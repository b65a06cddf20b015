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

// Package signing provides the unified signing facade over both module
// curves. A Signer wraps a keypair.KeyPair and dispatches to the
// curve-appropriate algorithm: Ed25519 keys sign with EdDSA (RFC 8032),
// P-256 keys with deterministic ECDSA (RFC 6979). Both paths are
// deterministic, so signing consumes no randomness.
package signing

import (
	"time"

	"github.com/jeremyhahn/go-curvetoken/pkg/crypto/edwards"
	"github.com/jeremyhahn/go-curvetoken/pkg/crypto/weierstrass"
	"github.com/jeremyhahn/go-curvetoken/pkg/keypair"
	"github.com/jeremyhahn/go-curvetoken/pkg/metrics"
	"github.com/jeremyhahn/go-curvetoken/pkg/types"
)

// Signer signs messages with the algorithm matching its key's curve.
type Signer struct {
	key *keypair.KeyPair
	alg types.Algorithm
}

// NewSigner creates a signer for the given key pair.
func NewSigner(key *keypair.KeyPair) (*Signer, error) {
	if key == nil {
		return nil, ErrSignerRequired
	}
	var alg types.Algorithm
	switch key.Curve() {
	case types.CurveEd25519:
		alg = types.AlgEdDSA
	case types.CurveP256:
		alg = types.AlgES256
	default:
		return nil, ErrUnsupportedCurve
	}
	return &Signer{key: key, alg: alg}, nil
}

// Algorithm returns the signing algorithm the key's curve maps to.
func (s *Signer) Algorithm() types.Algorithm { return s.alg }

// Public returns the compressed public key.
func (s *Signer) Public() []byte { return s.key.Public() }

// Sign produces a 64-byte signature over the message: EdDSA R||S for
// Ed25519, raw ECDSA r||s for P-256.
func (s *Signer) Sign(message []byte) ([]byte, error) {
	start := time.Now()
	var sig []byte
	switch s.key.Curve() {
	case types.CurveEd25519:
		sig = s.key.Ed25519().Sign(message)
	case types.CurveP256:
		sig = s.key.P256().Sign(message)
	default:
		return nil, ErrUnsupportedCurve
	}
	metrics.RecordOperation(metrics.OpSign, s.alg.String(), metrics.StatusSuccess, time.Since(start).Seconds())
	return sig, nil
}

// Verify checks a signature against a compressed public key on the given
// curve. The error taxonomy of the underlying curve package passes
// through: malformed signatures, invalid public keys, and verification
// failures are distinct sentinel errors.
func Verify(curve types.Curve, publicKey, message, sig []byte) error {
	alg, err := algorithmFor(curve)
	if err != nil {
		return err
	}

	start := time.Now()
	switch curve {
	case types.CurveEd25519:
		err = edwards.Verify(publicKey, message, sig)
	case types.CurveP256:
		err = weierstrass.Verify(publicKey, message, sig)
	}

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
		metrics.RecordError(metrics.OpVerify, alg.String(), "invalid_signature")
	}
	metrics.RecordOperation(metrics.OpVerify, alg.String(), status, time.Since(start).Seconds())
	return err
}

func algorithmFor(curve types.Curve) (types.Algorithm, error) {
	switch curve {
	case types.CurveEd25519:
		return types.AlgEdDSA, nil
	case types.CurveP256:
		return types.AlgES256, nil
	default:
		return "", ErrUnsupportedCurve
	}
}
