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

// Package rand provides the entropy source used for key generation,
// plus uniform scalar sampling for the curve orders.
//
// A Resolver wraps the configured source and implements io.Reader, so it
// drops in anywhere the standard library expects a randomness reader.
// Applications create one Resolver at startup and share it; all
// implementations are safe for concurrent use.
package rand

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrInvalidOrder is returned when a scalar order is not a 32-byte
	// big-endian value above one.
	ErrInvalidOrder = errors.New("rand: invalid scalar order")

	// ErrEntropyExhausted is returned when rejection sampling fails to
	// produce a scalar within the retry budget, which indicates a broken
	// entropy source.
	ErrEntropyExhausted = errors.New("rand: entropy source failed to produce a valid scalar")
)

// maxScalarAttempts bounds rejection sampling. A healthy source succeeds
// in one or two draws; hitting the bound means the source is returning
// constant or out-of-range bytes.
const maxScalarAttempts = 64

// Mode specifies which entropy source to use.
type Mode string

const (
	// ModeAuto selects the best available source. With no hardware
	// sources configured this resolves to software.
	ModeAuto Mode = "auto"

	// ModeSoftware uses crypto/rand.
	ModeSoftware Mode = "software"
)

// Config contains entropy source configuration.
type Config struct {
	// Mode specifies the entropy source. Defaults to ModeAuto.
	Mode Mode
}

// Source represents a random number generator.
type Source interface {
	// Rand returns n random bytes.
	Rand(n int) ([]byte, error)

	// Available reports whether the source is ready.
	Available() bool

	// Close releases any resources held by the source.
	Close() error
}

// Resolver is the main interface for generating random values.
//
// Resolver implements io.Reader, making it usable as a drop-in
// replacement for crypto/rand.Reader with key generation functions.
type Resolver interface {
	io.Reader

	// Rand returns n random bytes from the configured source.
	Rand(n int) ([]byte, error)

	// Scalar samples a uniform scalar in [1, order-1] for a 32-byte
	// big-endian group order, by rejection so the distribution carries
	// no modulo bias.
	Scalar(order []byte) ([]byte, error)

	// Source returns the underlying Source.
	Source() Source

	// Available reports whether the source is ready.
	Available() bool

	// Close releases any resources held by the resolver.
	Close() error
}

// NewResolver creates a resolver for the given configuration. A nil
// config selects auto mode.
func NewResolver(config *Config) (Resolver, error) {
	mode := ModeAuto
	if config != nil && config.Mode != "" {
		mode = config.Mode
	}
	switch mode {
	case ModeAuto, ModeSoftware:
		return &SoftwareResolver{}, nil
	default:
		return nil, fmt.Errorf("rand: unknown mode %q", mode)
	}
}

// SoftwareResolver draws from crypto/rand.
type SoftwareResolver struct{}

var _ Resolver = (*SoftwareResolver)(nil)

func (s *SoftwareResolver) Rand(n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	return buf, err
}

// Read implements io.Reader for compatibility with crypto/rand.Reader.
func (s *SoftwareResolver) Read(p []byte) (n int, err error) {
	return rand.Read(p)
}

func (s *SoftwareResolver) Scalar(order []byte) ([]byte, error) {
	return ScalarFrom(s, order)
}

func (s *SoftwareResolver) Source() Source { return softwareSource{} }

// Available always reports true: crypto/rand has no failure mode short
// of a broken kernel.
func (s *SoftwareResolver) Available() bool { return true }

func (s *SoftwareResolver) Close() error { return nil }

type softwareSource struct{}

func (softwareSource) Rand(n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	return buf, err
}

func (softwareSource) Available() bool { return true }

func (softwareSource) Close() error { return nil }

// ScalarFrom samples a uniform scalar in [1, order-1] from an arbitrary
// reader by bounded rejection sampling. The order must be 32 big-endian
// bytes describing a value above one.
func ScalarFrom(r io.Reader, order []byte) ([]byte, error) {
	if len(order) != 32 || !aboveOne(order) {
		return nil, ErrInvalidOrder
	}
	buf := make([]byte, 32)
	for attempt := 0; attempt < maxScalarAttempts; attempt++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		if isZero(buf) || bytes.Compare(buf, order) >= 0 {
			continue
		}
		out := make([]byte, 32)
		copy(out, buf)
		return out, nil
	}
	return nil, ErrEntropyExhausted
}

func isZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}

func aboveOne(b []byte) bool {
	for _, v := range b[:len(b)-1] {
		if v != 0 {
			return true
		}
	}
	return b[len(b)-1] > 1
}
