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

import (
	"crypto/hmac"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jeremyhahn/go-curvetoken/pkg/crypto/edwards"
	"github.com/jeremyhahn/go-curvetoken/pkg/crypto/weierstrass"
	"github.com/jeremyhahn/go-curvetoken/pkg/metrics"
	"github.com/jeremyhahn/go-curvetoken/pkg/types"
)

// Token is a decoded and verified token.
type Token struct {
	Header    Header
	Claims    Claims
	Signature []byte
}

// DecodeOptions controls verification during Decode.
type DecodeOptions struct {
	// AllowedAlgorithms is the algorithm allow-list. It must be
	// non-empty; a token whose header algorithm is not on the list is
	// rejected before any signature work.
	AllowedAlgorithms []types.Algorithm

	// VerifyExpiry rejects tokens whose exp claim is in the past.
	VerifyExpiry bool

	// VerifyNotBefore rejects tokens whose nbf claim is in the future.
	VerifyNotBefore bool

	// ExpectedIssuer, when set, must match the iss claim exactly.
	ExpectedIssuer string

	// ExpectedAudience, when set, must appear in the aud claim.
	ExpectedAudience string

	// ClockSkew is the tolerance applied to exp and nbf checks.
	ClockSkew time.Duration

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Decode parses a token, verifies its signature, and validates its
// claims per the options. The key type depends on the verified
// algorithm: the []byte HMAC secret for the HS family, or the compressed
// public key bytes for ES256 and EdDSA.
//
// The pipeline is strict and ordered: structure, header, allow-list,
// signature, then claims. A structurally broken token never reaches
// signature verification, and a forged token never reaches claim
// validation.
func Decode(token string, key any, opts *DecodeOptions) (*Token, error) {
	start := time.Now()
	decoded, alg, err := decode(token, key, opts)

	label := "unknown"
	if alg != "" {
		label = alg.String()
	}
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
		metrics.RecordError(metrics.OpTokenDecode, label, errorType(err))
	}
	metrics.RecordOperation(metrics.OpTokenDecode, label, status, time.Since(start).Seconds())
	return decoded, err
}

func decode(token string, key any, opts *DecodeOptions) (*Token, types.Algorithm, error) {
	if opts == nil || len(opts.AllowedAlgorithms) == 0 {
		return nil, "", ErrUnsupportedAlgorithm
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, "", ErrMalformedToken
	}
	headerJSON, err := b64.DecodeString(parts[0])
	if err != nil {
		return nil, "", ErrMalformedToken
	}
	claimsJSON, err := b64.DecodeString(parts[1])
	if err != nil {
		return nil, "", ErrMalformedToken
	}
	sig, err := b64.DecodeString(parts[2])
	if err != nil {
		return nil, "", ErrMalformedToken
	}

	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, "", ErrMalformedToken
	}
	alg, err := types.ParseAlgorithm(header.Algorithm)
	if err != nil {
		return nil, "", ErrUnsupportedAlgorithm
	}
	if !allowed(alg, opts.AllowedAlgorithms) {
		return nil, alg, ErrUnsupportedAlgorithm
	}

	signingInput := []byte(parts[0] + "." + parts[1])
	if err := verify(alg, key, signingInput, sig); err != nil {
		return nil, alg, err
	}

	var claims Claims
	if err := json.Unmarshal(claimsJSON, &claims); err != nil {
		return nil, alg, ErrMalformedToken
	}
	if err := validateClaims(&claims, opts); err != nil {
		return nil, alg, err
	}

	return &Token{Header: header, Claims: claims, Signature: sig}, alg, nil
}

func allowed(alg types.Algorithm, list []types.Algorithm) bool {
	for _, a := range list {
		if a == alg {
			return true
		}
	}
	return false
}

func verify(alg types.Algorithm, key any, input, sig []byte) error {
	if alg.Symmetric() {
		secret, ok := key.([]byte)
		if !ok || len(secret) == 0 {
			return ErrInvalidKey
		}
		if !hmac.Equal(sig, hmacSum(alg, secret, input)) {
			return ErrInvalidSignature
		}
		return nil
	}

	pub, ok := key.([]byte)
	if !ok {
		return ErrInvalidKey
	}
	var err error
	switch alg {
	case types.AlgES256:
		err = weierstrass.Verify(pub, input, sig)
		if errors.Is(err, weierstrass.ErrInvalidPublicKey) {
			return ErrInvalidKey
		}
	case types.AlgEdDSA:
		err = edwards.Verify(pub, input, sig)
		if errors.Is(err, edwards.ErrInvalidPublicKey) {
			return ErrInvalidKey
		}
	default:
		return ErrUnsupportedAlgorithm
	}
	if err != nil {
		return ErrInvalidSignature
	}
	return nil
}

func validateClaims(claims *Claims, opts *DecodeOptions) error {
	now := time.Now()
	if opts.Now != nil {
		now = opts.Now()
	}
	skew := int64(opts.ClockSkew / time.Second)

	if opts.VerifyExpiry && claims.ExpiresAt != 0 && now.Unix() > claims.ExpiresAt+skew {
		return ErrTokenExpired
	}
	if opts.VerifyNotBefore && claims.NotBefore != 0 && now.Unix() < claims.NotBefore-skew {
		return ErrTokenNotYetValid
	}
	if opts.ExpectedIssuer != "" && claims.Issuer != opts.ExpectedIssuer {
		return ErrIssuerMismatch
	}
	if opts.ExpectedAudience != "" && !claims.HasAudience(opts.ExpectedAudience) {
		return ErrAudienceMismatch
	}
	return nil
}

func errorType(err error) string {
	switch {
	case errors.Is(err, ErrMalformedToken):
		return "malformed_token"
	case errors.Is(err, ErrUnsupportedAlgorithm):
		return "unsupported_algorithm"
	case errors.Is(err, ErrInvalidKey):
		return "invalid_key"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrTokenNotYetValid):
		return "token_not_yet_valid"
	case errors.Is(err, ErrIssuerMismatch):
		return "issuer_mismatch"
	case errors.Is(err, ErrAudienceMismatch):
		return "audience_mismatch"
	default:
		return "internal"
	}
}
