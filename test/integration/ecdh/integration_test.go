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

package ecdh

import (
	"crypto/rand"
	"testing"

	"github.com/jeremyhahn/go-curvetoken/pkg/crypto/ecdh"
	"github.com/jeremyhahn/go-curvetoken/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKeyAgreementIntegration tests the full exchange flow on both
// curves: generate, exchange public keys, derive, expand with HKDF
func TestKeyAgreementIntegration(t *testing.T) {
	for _, curve := range []types.Curve{types.CurveEd25519, types.CurveP256} {
		t.Run(string(curve), func(t *testing.T) {
			agreement, err := ecdh.New(curve)
			require.NoError(t, err)

			alice, err := agreement.GenerateKey(rand.Reader)
			require.NoError(t, err, "Failed to generate key for alice")
			bob, err := agreement.GenerateKey(rand.Reader)
			require.NoError(t, err, "Failed to generate key for bob")

			aliceSecret, err := agreement.DeriveSharedSecret(alice, bob.Public())
			require.NoError(t, err, "alice failed to derive")
			bobSecret, err := agreement.DeriveSharedSecret(bob, alice.Public())
			require.NoError(t, err, "bob failed to derive")

			require.Equal(t, aliceSecret, bobSecret, "Shared secrets differ")
			assert.Len(t, aliceSecret, ecdh.SharedSecretSize)

			aliceKey, err := ecdh.DeriveKey(aliceSecret, nil, []byte("session"), 32)
			require.NoError(t, err)
			bobKey, err := ecdh.DeriveKey(bobSecret, nil, []byte("session"), 32)
			require.NoError(t, err)
			assert.Equal(t, aliceKey, bobKey, "Derived keys differ")

			otherContext, err := ecdh.DeriveKey(aliceSecret, nil, []byte("other"), 32)
			require.NoError(t, err)
			assert.NotEqual(t, aliceKey, otherContext,
				"Different info produced the same key")
		})
	}
}

// TestKeyAgreementPersistenceIntegration tests agreement with a key
// reloaded from its exported bytes
func TestKeyAgreementPersistenceIntegration(t *testing.T) {
	for _, curve := range []types.Curve{types.CurveEd25519, types.CurveP256} {
		agreement, err := ecdh.New(curve)
		require.NoError(t, err)

		alice, err := agreement.GenerateKey(rand.Reader)
		require.NoError(t, err)
		bob, err := agreement.GenerateKey(rand.Reader)
		require.NoError(t, err)

		reloaded, err := agreement.NewKeyFromBytes(alice.Bytes())
		require.NoError(t, err, "Failed to reload %s key", curve)
		assert.Equal(t, alice.Public(), reloaded.Public())

		original, err := agreement.DeriveSharedSecret(alice, bob.Public())
		require.NoError(t, err)
		fromReloaded, err := agreement.DeriveSharedSecret(reloaded, bob.Public())
		require.NoError(t, err)
		assert.Equal(t, original, fromReloaded,
			"Reloaded key derived a different secret")
	}
}
