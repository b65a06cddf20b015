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
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"hash"
	"time"

	"github.com/jeremyhahn/go-curvetoken/pkg/keypair"
	"github.com/jeremyhahn/go-curvetoken/pkg/metrics"
	"github.com/jeremyhahn/go-curvetoken/pkg/types"
)

var b64 = base64.RawURLEncoding

// Header is the JOSE header of a token.
type Header struct {
	Algorithm string `json:"alg"`
	Type      string `json:"typ,omitempty"`
	KeyID     string `json:"kid,omitempty"`
}

// Encode builds and signs a token. The key type depends on the
// algorithm: a non-empty []byte secret for the HMAC family, or a
// *keypair.KeyPair on the matching curve for ES256 and EdDSA. An
// optional kid is placed in the header for key identification.
func Encode(claims *Claims, alg types.Algorithm, key any, kid string) (string, error) {
	start := time.Now()
	token, err := encode(claims, alg, key, kid)

	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	metrics.RecordOperation(metrics.OpTokenEncode, alg.String(), status, time.Since(start).Seconds())
	return token, err
}

func encode(claims *Claims, alg types.Algorithm, key any, kid string) (string, error) {
	if !alg.Valid() {
		return "", ErrUnsupportedAlgorithm
	}

	// Canonical header: encoding/json writes map keys in sorted order,
	// matching the claim encoding.
	header := map[string]string{"alg": alg.String(), "typ": "JWT"}
	if kid != "" {
		header["kid"] = kid
	}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", err
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	signingInput := b64.EncodeToString(headerJSON) + "." + b64.EncodeToString(claimsJSON)
	sig, err := sign(alg, key, []byte(signingInput))
	if err != nil {
		return "", err
	}
	return signingInput + "." + b64.EncodeToString(sig), nil
}

func sign(alg types.Algorithm, key any, input []byte) ([]byte, error) {
	if alg.Symmetric() {
		secret, ok := key.([]byte)
		if !ok || len(secret) == 0 {
			return nil, ErrInvalidKey
		}
		return hmacSum(alg, secret, input), nil
	}

	kp, ok := key.(*keypair.KeyPair)
	if !ok {
		return nil, ErrInvalidKey
	}
	curve, _ := alg.Curve()
	if kp.Curve() != curve {
		return nil, ErrInvalidKey
	}
	switch alg {
	case types.AlgES256:
		return kp.P256().Sign(input), nil
	case types.AlgEdDSA:
		return kp.Ed25519().Sign(input), nil
	}
	return nil, ErrUnsupportedAlgorithm
}

func hmacSum(alg types.Algorithm, secret, input []byte) []byte {
	var newHash func() hash.Hash
	switch alg {
	case types.AlgHS256:
		newHash = sha256.New
	case types.AlgHS384:
		newHash = sha512.New384
	case types.AlgHS512:
		newHash = sha512.New
	}
	mac := hmac.New(newHash, secret)
	mac.Write(input)
	return mac.Sum(nil)
}
