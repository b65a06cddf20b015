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
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// registered claim names, RFC 7519 section 4.1.
var registeredNames = map[string]bool{
	"iss": true, "sub": true, "aud": true,
	"exp": true, "nbf": true, "iat": true, "jti": true,
}

// Claims holds the RFC 7519 registered claims plus arbitrary custom
// claims. Timestamps are Unix seconds; zero means the claim is absent.
type Claims struct {
	Issuer    string
	Subject   string
	Audience  []string
	ExpiresAt int64
	NotBefore int64
	IssuedAt  int64
	ID        string

	// Custom carries non-registered claims. Registered names in Custom
	// are ignored during encoding; the struct fields win.
	Custom map[string]any
}

// NewClaims builds a claim set with a random UUID jti and iat set to the
// current time. A zero ttl leaves exp unset.
func NewClaims(issuer, subject string, audience []string, ttl time.Duration) *Claims {
	now := time.Now()
	c := &Claims{
		Issuer:   issuer,
		Subject:  subject,
		Audience: audience,
		IssuedAt: now.Unix(),
		ID:       uuid.NewString(),
	}
	if ttl > 0 {
		c.ExpiresAt = now.Add(ttl).Unix()
	}
	return c
}

// MarshalJSON emits the claims as a canonical JSON object: keys in
// sorted order, a bare string for a single audience, and integer
// timestamps. Encoding the same claims twice yields identical bytes.
func (c *Claims) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(c.Custom)+7)
	for k, v := range c.Custom {
		if !registeredNames[k] {
			m[k] = v
		}
	}
	if c.Issuer != "" {
		m["iss"] = c.Issuer
	}
	if c.Subject != "" {
		m["sub"] = c.Subject
	}
	switch len(c.Audience) {
	case 0:
	case 1:
		m["aud"] = c.Audience[0]
	default:
		m["aud"] = c.Audience
	}
	if c.ExpiresAt != 0 {
		m["exp"] = c.ExpiresAt
	}
	if c.NotBefore != 0 {
		m["nbf"] = c.NotBefore
	}
	if c.IssuedAt != 0 {
		m["iat"] = c.IssuedAt
	}
	if c.ID != "" {
		m["jti"] = c.ID
	}
	// encoding/json writes map keys in sorted order.
	return json.Marshal(m)
}

// UnmarshalJSON parses a claim object, splitting registered claims into
// the struct fields and everything else into Custom.
func (c *Claims) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	*c = Claims{}
	for name, raw := range m {
		switch name {
		case "iss":
			if err := json.Unmarshal(raw, &c.Issuer); err != nil {
				return err
			}
		case "sub":
			if err := json.Unmarshal(raw, &c.Subject); err != nil {
				return err
			}
		case "jti":
			if err := json.Unmarshal(raw, &c.ID); err != nil {
				return err
			}
		case "aud":
			aud, err := parseAudience(raw)
			if err != nil {
				return err
			}
			c.Audience = aud
		case "exp":
			if err := parseUnix(raw, &c.ExpiresAt); err != nil {
				return err
			}
		case "nbf":
			if err := parseUnix(raw, &c.NotBefore); err != nil {
				return err
			}
		case "iat":
			if err := parseUnix(raw, &c.IssuedAt); err != nil {
				return err
			}
		default:
			if c.Custom == nil {
				c.Custom = make(map[string]any)
			}
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			c.Custom[name] = v
		}
	}
	return nil
}

// parseAudience accepts the RFC 7519 aud forms: a single string or an
// array of strings.
func parseAudience(raw json.RawMessage) ([]string, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}, nil
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err != nil {
		return nil, err
	}
	return many, nil
}

// parseUnix accepts a NumericDate, truncating fractional seconds.
func parseUnix(raw json.RawMessage, out *int64) error {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return err
	}
	*out = int64(f)
	return nil
}

// HasAudience reports whether the claim set names the given audience.
func (c *Claims) HasAudience(aud string) bool {
	for _, a := range c.Audience {
		if a == aud {
			return true
		}
	}
	return false
}
