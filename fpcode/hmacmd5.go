// Copyright (c) 2026 Flowerpass Team
// Flowerpass - deterministic password generator
// This source code is licensed under the MIT license found in the LICENSE file.

package fpcode

import (
	"crypto/md5"
	"encoding/hex"
)

// blockSize is the HMAC block size for MD5, in bytes.
const blockSize = 64

// HmacMD5 computes the keyed MD5 digest of message under key and returns it
// as a 32-character lowercase hex string.
//
// When key is empty it returns the plain MD5 of message instead of a real
// HMAC. Standard HMAC defines an empty-key value, but blueimp-md5's
// two-argument mode falls back to a bare hash, and the rest of the
// derivation chain depends on reproducing that behavior bit for bit. Do not
// "fix" this by switching to crypto/hmac.
func HmacMD5(message, key string) string {
	if key == "" {
		sum := md5.Sum([]byte(message))
		return hex.EncodeToString(sum[:])
	}

	// Keys longer than one block are replaced by their digest; either way
	// the block is zero-padded to 64 bytes.
	var block [blockSize]byte
	if keyBytes := []byte(key); len(keyBytes) > blockSize {
		sum := md5.Sum(keyBytes)
		copy(block[:], sum[:])
	} else {
		copy(block[:], keyBytes)
	}

	ipad := make([]byte, blockSize, blockSize+len(message))
	opad := make([]byte, blockSize, blockSize+md5.Size)
	for i := range block {
		ipad[i] = block[i] ^ 0x36
		opad[i] = block[i] ^ 0x5c
	}

	inner := md5.Sum(append(ipad, message...))
	outer := md5.Sum(append(opad, inner[:]...))
	return hex.EncodeToString(outer[:])
}
