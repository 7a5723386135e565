// Copyright (c) 2026 Flowerpass Team
// Flowerpass - deterministic password generator
// This source code is licensed under the MIT license found in the LICENSE file.

package fpcode

import (
	"fmt"
	"strings"
)

// MinLength and MaxLength bound the valid output length, inclusive.
const (
	MinLength = 2
	MaxLength = 32
)

// digestLen is the length of a hex-encoded MD5 digest.
const digestLen = 32

// The fixed salts for the second-order digests. Load-bearing for output
// compatibility; changing them silently produces different passwords.
const (
	ruleSalt   = "kise"
	sourceSalt = "snow"
)

// magicString is the fixed reference set for the case-transformation rule.
// A source character is upper-cased when the rule character at the same
// position occurs anywhere in this string.
const magicString = "sunlovesnow1990090127xykab"

// InvalidLengthError reports a requested length outside [MinLength, MaxLength].
type InvalidLengthError struct {
	Length int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("Length must be between %d and %d, got: %d", MinLength, MaxLength, e.Length)
}

// Code derives the Flower Password for the given master password and key.
//
// password and key may be any strings, including empty ones; they are hashed
// as raw bytes. length must be in [MinLength, MaxLength] or an
// *InvalidLengthError is returned before any hashing happens. The result is
// exactly length characters from [0-9a-zA-Z] and always starts with a letter.
func Code(password, key string, length int) (string, error) {
	if length < MinLength || length > MaxLength {
		return "", &InvalidLengthError{Length: length}
	}

	base := HmacMD5(password, key)
	rule := HmacMD5(base, ruleSalt)
	source := HmacMD5(base, sourceSalt)

	return transform(rule, source)[:length], nil
}

// transform folds the rule digest into the source digest: digits pass
// through untouched, hex letters are upper-cased when the rule character at
// the same position occurs in magicString, and a leading digit is replaced
// with 'K' so the result always starts with a letter.
func transform(rule, source string) string {
	out := []byte(source)
	for i := 0; i < digestLen; i++ {
		c := out[i]
		if c >= '0' && c <= '9' {
			continue
		}
		if strings.IndexByte(magicString, rule[i]) >= 0 {
			out[i] = c - ('a' - 'A')
		}
	}
	if out[0] >= '0' && out[0] <= '9' {
		out[0] = 'K'
	}
	return string(out)
}
