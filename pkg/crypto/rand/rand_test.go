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

package rand

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"
)

// P-256 group order, big-endian.
var testOrder = mustHex("ffffffff00000000ffffffffffffffffbce6faada7179e84f3b9cac2fc632551")

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestNewResolver(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{"nil config", nil, false},
		{"auto", &Config{Mode: ModeAuto}, false},
		{"software", &Config{Mode: ModeSoftware}, false},
		{"unknown", &Config{Mode: Mode("tpm2")}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewResolver(tt.config)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewResolver() err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if !r.Available() {
				t.Fatal("resolver not available")
			}
			if err := r.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}
		})
	}
}

func TestRand(t *testing.T) {
	r, err := NewResolver(nil)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	a, err := r.Rand(32)
	if err != nil {
		t.Fatalf("Rand: %v", err)
	}
	b, err := r.Rand(32)
	if err != nil {
		t.Fatalf("Rand: %v", err)
	}
	if len(a) != 32 || len(b) != 32 {
		t.Fatalf("lengths %d, %d, want 32", len(a), len(b))
	}
	if bytes.Equal(a, b) {
		t.Fatal("two draws returned identical bytes")
	}

	// io.Reader compatibility.
	buf := make([]byte, 16)
	n, err := r.Read(buf)
	if err != nil || n != 16 {
		t.Fatalf("Read = %d, %v", n, err)
	}
}

func TestScalarRange(t *testing.T) {
	r, err := NewResolver(nil)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	for i := 0; i < 100; i++ {
		s, err := r.Scalar(testOrder)
		if err != nil {
			t.Fatalf("Scalar: %v", err)
		}
		if len(s) != 32 {
			t.Fatalf("scalar length = %d, want 32", len(s))
		}
		if bytes.Compare(s, testOrder) >= 0 {
			t.Fatalf("scalar %x not below order", s)
		}
		if bytes.Equal(s, make([]byte, 32)) {
			t.Fatal("scalar is zero")
		}
	}
}

func TestScalarOrderValidation(t *testing.T) {
	r, err := NewResolver(nil)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	bad := [][]byte{
		nil,
		make([]byte, 16),
		make([]byte, 32), // zero order
		append(make([]byte, 31), 1), // order one: empty range
	}
	for _, order := range bad {
		if _, err := r.Scalar(order); !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("Scalar(%x) err = %v, want ErrInvalidOrder", order, err)
		}
	}
}

// constantReader always yields the same byte, so rejection sampling can
// never terminate when that byte falls outside the range.
type constantReader byte

func (c constantReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(c)
	}
	return len(p), nil
}

func TestScalarFromBoundedRetry(t *testing.T) {
	// All 0xff bytes exceed the order on every draw.
	if _, err := ScalarFrom(constantReader(0xff), testOrder); !errors.Is(err, ErrEntropyExhausted) {
		t.Errorf("ScalarFrom(0xff...) err = %v, want ErrEntropyExhausted", err)
	}
	// All zero bytes are rejected as the zero scalar.
	if _, err := ScalarFrom(constantReader(0), testOrder); !errors.Is(err, ErrEntropyExhausted) {
		t.Errorf("ScalarFrom(0x00...) err = %v, want ErrEntropyExhausted", err)
	}
	// A constant in range succeeds on the first draw.
	s, err := ScalarFrom(constantReader(0x42), testOrder)
	if err != nil {
		t.Fatalf("ScalarFrom: %v", err)
	}
	if !bytes.Equal(s, bytes.Repeat([]byte{0x42}, 32)) {
		t.Fatalf("scalar = %x", s)
	}
}

func TestSource(t *testing.T) {
	r, err := NewResolver(nil)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	src := r.Source()
	if !src.Available() {
		t.Fatal("source not available")
	}
	b, err := src.Rand(8)
	if err != nil || len(b) != 8 {
		t.Fatalf("source Rand = %x, %v", b, err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("source Close: %v", err)
	}
}
