// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultPBKDF2Iterations is the production work factor of the KEK derivation.
	DefaultPBKDF2Iterations = 600_000

	saltSize = 16
	keySize  = 32
	ivSize   = 12
)

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	iterations int
}

// Option tunes a [KeyChainService].
type Option func(*keyChainService)

// WithIterations overrides the PBKDF2 work factor. Payloads sealed with one
// work factor can only be opened with the same one, so production code must
// not use it.
func WithIterations(n int) Option {
	return func(k *keyChainService) {
		if n > 0 {
			k.iterations = n
		}
	}
}

// NewKeyChainService returns a [KeyChainService] deriving keys with
// PBKDF2-HMAC-SHA256 at [DefaultPBKDF2Iterations].
func NewKeyChainService(opts ...Option) KeyChainService {
	k := &keyChainService{iterations: DefaultPBKDF2Iterations}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// GenerateEncryptionSalt implements [KeyChainService].
func (k *keyChainService) GenerateEncryptionSalt() ([]byte, error) {
	return randomBytes(saltSize)
}

// GenerateDEK implements [KeyChainService].
func (k *keyChainService) GenerateDEK() ([]byte, error) {
	return randomBytes(keySize)
}

// GenerateKEK implements [KeyChainService].
func (k *keyChainService) GenerateKEK(recoveryKey string, salt []byte) []byte {
	return pbkdf2.Key([]byte(recoveryKey), salt, k.iterations, keySize, sha256.New)
}

// WrapDEK implements [KeyChainService].
func (k *keyChainService) WrapDEK(dek, kek []byte) ([]byte, []byte, error) {
	return seal(dek, kek)
}

// UnwrapDEK implements [KeyChainService].
func (k *keyChainService) UnwrapDEK(wrapped, iv, kek []byte) ([]byte, error) {
	dek, err := open(wrapped, iv, kek)
	if err != nil {
		return nil, fmt.Errorf("unwrapping DEK: %w", err)
	}
	return dek, nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, err
	}
	return b, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// seal encrypts plaintext under key with a fresh random IV.
func seal(plaintext, key []byte) (sealed, iv []byte, err error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	iv, err = randomBytes(gcm.NonceSize())
	if err != nil {
		return nil, nil, err
	}

	return gcm.Seal(nil, iv, plaintext, nil), iv, nil
}

// open reverses seal. Any authentication failure maps to ErrWrongKey.
func open(sealed, iv, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(iv) != gcm.NonceSize() {
		return nil, fmt.Errorf("%w: iv must be %d bytes", ErrCorrupted, gcm.NonceSize())
	}

	plaintext, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, ErrWrongKey
	}
	return plaintext, nil
}
