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

//go:build integration

package token

import (
	"crypto/rand"
	"testing"
	"time"

	"github.com/jeremyhahn/go-curvetoken/pkg/encoding/jwt"
	"github.com/jeremyhahn/go-curvetoken/pkg/keypair"
	"github.com/jeremyhahn/go-curvetoken/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTokenLifecycleIntegration tests issue-transmit-verify for every
// supported algorithm
func TestTokenLifecycleIntegration(t *testing.T) {
	secret := []byte("integration-test-secret-32-bytes")

	edKey, err := keypair.Generate(types.CurveEd25519, rand.Reader)
	require.NoError(t, err)
	ecKey, err := keypair.Generate(types.CurveP256, rand.Reader)
	require.NoError(t, err)

	tests := []struct {
		alg       types.Algorithm
		signKey   interface{}
		verifyKey interface{}
	}{
		{types.AlgHS256, secret, secret},
		{types.AlgHS384, secret, secret},
		{types.AlgHS512, secret, secret},
		{types.AlgEdDSA, edKey, edKey.Public()},
		{types.AlgES256, ecKey, ecKey.Public()},
	}

	for _, tc := range tests {
		t.Run(string(tc.alg), func(t *testing.T) {
			claims := jwt.NewClaims("integration", "user-1", []string{"app"}, time.Minute)
			claims.Custom["scope"] = "read write"

			token, err := jwt.Encode(claims, tc.alg, tc.signKey, "integration-key")
			require.NoError(t, err, "Failed to encode token")

			decoded, err := jwt.Decode(token, tc.verifyKey, &jwt.DecodeOptions{
				AllowedAlgorithms: []types.Algorithm{tc.alg},
				VerifyExpiry:      true,
				VerifyNotBefore:   true,
				ExpectedIssuer:    "integration",
				ExpectedAudience:  "app",
			})
			require.NoError(t, err, "Failed to decode token")

			assert.Equal(t, tc.alg, decoded.Header.Algorithm)
			assert.Equal(t, "integration-key", decoded.Header.KeyID)
			assert.Equal(t, "user-1", decoded.Claims.Subject)
			assert.Equal(t, "read write", decoded.Claims.Custom["scope"])
			assert.NotEmpty(t, decoded.Claims.ID, "jti should be populated")
		})
	}
}

// TestTokenExpiryIntegration tests lifetime enforcement with real time
func TestTokenExpiryIntegration(t *testing.T) {
	secret := []byte("integration-test-secret-32-bytes")

	claims := jwt.NewClaims("integration", "user-1", nil, time.Second)
	token, err := jwt.Encode(claims, types.AlgHS256, secret, "")
	require.NoError(t, err)

	opts := &jwt.DecodeOptions{
		AllowedAlgorithms: []types.Algorithm{types.AlgHS256},
		VerifyExpiry:      true,
	}

	_, err = jwt.Decode(token, secret, opts)
	assert.NoError(t, err, "Fresh token rejected")

	time.Sleep(1100 * time.Millisecond)

	_, err = jwt.Decode(token, secret, opts)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired, "Expired token accepted")
}

// TestTokenCrossAlgorithmRejectionIntegration tests that verifiers
// pinned to one algorithm reject tokens signed with another
func TestTokenCrossAlgorithmRejectionIntegration(t *testing.T) {
	secret := []byte("integration-test-secret-32-bytes")
	edKey, err := keypair.Generate(types.CurveEd25519, rand.Reader)
	require.NoError(t, err)

	claims := jwt.NewClaims("integration", "user-1", nil, time.Minute)
	token, err := jwt.Encode(claims, types.AlgEdDSA, edKey, "")
	require.NoError(t, err)

	_, err = jwt.Decode(token, secret, &jwt.DecodeOptions{
		AllowedAlgorithms: []types.Algorithm{types.AlgHS256},
	})
	assert.ErrorIs(t, err, jwt.ErrUnsupportedAlgorithm,
		"EdDSA token passed an HS256-only verifier")
}
