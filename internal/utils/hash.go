// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HashSHA256Header carries the hex HMAC-SHA256 of a request body.
const HashSHA256Header = "HashSHA256"

// HashString returns the hex-encoded HMAC-SHA256 of data under hashKey.
func HashString(data []byte, hashKey string) string {
	return hex.EncodeToString(hashBytes(data, hashKey))
}

// VerifyHash reports whether signature is the hex HMAC-SHA256 of data under
// hashKey. The comparison is constant time.
func VerifyHash(data []byte, signature, hashKey string) bool {
	expected, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, hashBytes(data, hashKey))
}

func hashBytes(data []byte, hashKey string) []byte {
	h := hmac.New(sha256.New, []byte(hashKey))
	h.Write(data)
	return h.Sum(nil)
}
