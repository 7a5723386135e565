// Copyright (c) 2026 Flowerpass Team
// Flowerpass - deterministic password generator
// This source code is licensed under the MIT license found in the LICENSE file.

package fpcode

import (
	"errors"
	"strings"
	"testing"
)

func mustCode(t *testing.T, password, key string, length int) string {
	t.Helper()
	got, err := Code(password, key, length)
	if err != nil {
		t.Fatalf("Code(%q, %q, %d) returned error: %v", password, key, length, err)
	}
	return got
}

func TestCode_KnownVectors(t *testing.T) {
	tests := []struct {
		password string
		key      string
		length   int
		want     string
	}{
		{"test", "github.com", 16, "D04175F7A9c7Ab4a"},
		{"password", "key", 16, "K3A2a66Bf88b628c"},
		{"password", "key", 2, "K3"},
		{"password", "key", 8, "K3A2a66B"},
		{"password", "key", 24, "K3A2a66Bf88b628c2Cd7cDA9"},
		{"password", "key", 32, "K3A2a66Bf88b628c2Cd7cDA9958f6b26"},
		{"test", "example.com", 16, "B0399e643E07a2EA"},
		{"mypass", "github.com", 16, "K5817EB58CE4512F"},
		{"secret", "google.com", 16, "Kc6813f75AAa6Bd1"},
		{"12345", "site", 16, "K05a62bfea0C1553"},
		{"mypassword", "example.com", 12, "K0CA12CecFFB"},
		// Empty inputs exercise the plain-MD5 fallback.
		{"", "key", 16, "K46eB52c968caeAa"},
		{"password", "", 16, "eB3b1cA3D6B54c00"},
		{"", "", 16, "K930B0264e62DDFC"},
		// Non-ASCII input is hashed by its byte encoding.
		{"密码", "网站.com", 16, "KFF7FEa7928bAAAa"},
		{"p@ssw0rd!#$%", "key", 16, "D4e5c2BE16F71498"},
		{"password", "user@example.com", 16, "K98076292B62A974"},
		{strings.Repeat("a", 1000), "key", 16, "K2775CF7c646a718"},
		{"password", strings.Repeat("b", 1000), 16, "K77E3F873Aa8a01f"},
	}
	for _, tt := range tests {
		if got := mustCode(t, tt.password, tt.key, tt.length); got != tt.want {
			t.Errorf("Code(%q, %q, %d) = %q, want %q", tt.password, tt.key, tt.length, got, tt.want)
		}
	}
}

func TestCode_AllValidLengths(t *testing.T) {
	// Every valid length is a prefix of the full 32-character derivation.
	full := mustCode(t, "password", "key", MaxLength)
	if full != "K3A2a66Bf88b628c2Cd7cDA9958f6b26" {
		t.Fatalf("unexpected full-length derivation: %q", full)
	}
	for length := MinLength; length <= MaxLength; length++ {
		got := mustCode(t, "password", "key", length)
		if len(got) != length {
			t.Errorf("length %d: got %d characters (%q)", length, len(got), got)
		}
		if got != full[:length] {
			t.Errorf("length %d: %q is not a prefix of %q", length, got, full)
		}
	}
}

func TestCode_Deterministic(t *testing.T) {
	first := mustCode(t, "master", "some-site.example", 20)
	second := mustCode(t, "master", "some-site.example", 20)
	if first != second {
		t.Fatalf("same inputs produced different outputs: %q vs %q", first, second)
	}
}

func TestCode_SensitiveToInputs(t *testing.T) {
	base := mustCode(t, "password", "key", 16)
	if got := mustCode(t, "password2", "key", 16); got == base {
		t.Errorf("changing the master password did not change the output (%q)", got)
	}
	if got := mustCode(t, "password", "key2", 16); got == base {
		t.Errorf("changing the key did not change the output (%q)", got)
	}
}

func TestCode_FirstCharAlwaysLetter(t *testing.T) {
	keys := []string{"github.com", "example.com", "a", "", "123", "网站"}
	for i := 0; i < 100; i++ {
		keys = append(keys, "site"+strings.Repeat("x", i%7)+".com")
	}
	for _, key := range keys {
		got := mustCode(t, "test", key, 16)
		c := got[0]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			t.Errorf("Code(%q): first character %q not alphabetic in %q", key, c, got)
		}
	}
}

func TestCode_CharacterSet(t *testing.T) {
	got := mustCode(t, "password", "key", 32)
	for i := 0; i < len(got); i++ {
		c := got[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		default:
			t.Errorf("character %q at position %d outside [0-9a-zA-Z]", c, i)
		}
	}
	if got == strings.ToLower(got) || got == strings.ToUpper(got) {
		t.Errorf("expected mixed-case output, got %q", got)
	}
}

func TestCode_InvalidLength(t *testing.T) {
	for _, length := range []int{-1, 0, 1, 33, 100} {
		_, err := Code("password", "key", length)
		if err == nil {
			t.Fatalf("Code with length %d succeeded, want error", length)
		}
		var invalid *InvalidLengthError
		if !errors.As(err, &invalid) {
			t.Fatalf("length %d: error type %T, want *InvalidLengthError", length, err)
		}
		if invalid.Length != length {
			t.Errorf("length %d: error carries %d", length, invalid.Length)
		}
	}

	_, err := Code("password", "key", 0)
	if got, want := err.Error(), "Length must be between 2 and 32, got: 0"; got != want {
		t.Errorf("error message %q, want %q", got, want)
	}
}
