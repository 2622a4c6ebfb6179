// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// keyAlphabet omits characters that are easy to misread: 0 O 1 I L.
const keyAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	keyLength    = 16
	keyGroupSize = 4
)

// GenerateKey returns a new human-transcribable recovery key such as
// "K7QM-2XHD-PN9R-WC4T".
func GenerateKey() (string, error) {
	limit := big.NewInt(int64(len(keyAlphabet)))

	raw := make([]byte, keyLength)
	for i := range raw {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generating recovery key: %w", err)
		}
		raw[i] = keyAlphabet[n.Int64()]
	}

	return group(string(raw)), nil
}

// NormalizeKey accepts user input with any case, spaces or dashes and
// returns the canonical grouped form.
func NormalizeKey(input string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToUpper(input) {
		switch {
		case r == '-' || r == ' ' || r == '\t':
			continue
		case strings.ContainsRune(keyAlphabet, r):
			b.WriteRune(r)
		default:
			return "", fmt.Errorf("%w: unexpected character %q", ErrInvalidKey, r)
		}
	}

	if b.Len() != keyLength {
		return "", fmt.Errorf("%w: want %d characters, got %d", ErrInvalidKey, keyLength, b.Len())
	}

	return group(b.String()), nil
}

func group(raw string) string {
	parts := make([]string, 0, len(raw)/keyGroupSize)
	for i := 0; i < len(raw); i += keyGroupSize {
		parts = append(parts, raw[i:i+keyGroupSize])
	}
	return strings.Join(parts, "-")
}
