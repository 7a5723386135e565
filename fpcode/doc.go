// Copyright (c) 2026 Flowerpass Team
// Flowerpass - deterministic password generator
// This source code is licensed under the MIT license found in the LICENSE file.

// Package fpcode implements the Flower Password derivation algorithm.
//
// The algorithm turns a master password and a per-service key into a
// deterministic, human-typeable password: the same (master, key, length)
// triple always yields the same output, so nothing ever needs to be stored.
// Outputs are drawn from [0-9a-zA-Z], are exactly the requested length
// (2 to 32 characters), and always start with a letter.
//
// The derivation chain is a keyed MD5 construction compatible with the
// two-argument mode of the blueimp-md5 JavaScript library, followed by a
// fixed case-transformation rule. The constants involved are part of the
// algorithm's compatibility contract and must not be changed.
package fpcode
