// Copyright (c) 2026 Flowerpass Team
// Flowerpass - deterministic password generator
// This source code is licensed under the MIT license found in the LICENSE file.

package fpcode

import (
	"strings"
	"testing"
)

func TestHmacMD5_EmptyKeyIsPlainMD5(t *testing.T) {
	// blueimp-md5 compatibility: an empty key degrades to a bare hash.
	tests := []struct {
		message string
		want    string
	}{
		{"", "d41d8cd98f00b204e9800998ecf8427e"},
		{"password", "5f4dcc3b5aa765d61d8327deb882cf99"},
		{"The quick brown fox jumps over the lazy dog", "9e107d9d372bb6826bd81d3542a419d6"},
	}
	for _, tt := range tests {
		if got := HmacMD5(tt.message, ""); got != tt.want {
			t.Errorf("HmacMD5(%q, \"\") = %q, want %q", tt.message, got, tt.want)
		}
	}
}

func TestHmacMD5_KnownVectors(t *testing.T) {
	// RFC 2202 test case 2 (standard HMAC-MD5, key shorter than a block).
	if got, want := HmacMD5("what do ya want for nothing?", "Jefe"), "750c783e6ab0b503eaa86e310a5db738"; got != want {
		t.Errorf("HmacMD5 RFC 2202 vector = %q, want %q", got, want)
	}
}

func TestHmacMD5_Format(t *testing.T) {
	for _, key := range []string{"", "k", "key", strings.Repeat("k", 64), strings.Repeat("k", 65), strings.Repeat("k", 1000)} {
		got := HmacMD5("message", key)
		if len(got) != 32 {
			t.Fatalf("digest for key length %d has %d characters: %q", len(key), len(got), got)
		}
		for i := 0; i < len(got); i++ {
			c := got[i]
			if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
				t.Fatalf("digest %q contains non-hex character %q", got, c)
			}
		}
	}
}

func TestHmacMD5_LongKeyHashedToBlock(t *testing.T) {
	// A key longer than 64 bytes is replaced by its 16-byte MD5 digest, so
	// two distinct long keys with the same digest prefix behavior still
	// produce distinct digests, while the same key always agrees.
	long := strings.Repeat("b", 1000)
	if HmacMD5("password", long) != HmacMD5("password", long) {
		t.Fatal("HmacMD5 is not deterministic for long keys")
	}
	if HmacMD5("password", long) == HmacMD5("password", strings.Repeat("c", 1000)) {
		t.Fatal("distinct long keys produced identical digests")
	}
}
