// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"

	"github.com/MKhiriev/go-omnifolio/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// KeyChainService does all client-side cryptography of the end-to-end
// encrypted snapshot. It knows nothing about the network or storage.
//
// Envelope layout:
//
//	Salt, DEK  = GenerateEncryptionSalt() + GenerateDEK()
//	KEK        = GenerateKEK(recoveryKey, salt)        PBKDF2-SHA256
//	WrappedDEK = WrapDEK(DEK, KEK)                      AES-256-GCM, own IV
//	Ciphertext = Seal(stateJSON, DEK)                   AES-256-GCM, own IV
//
// Only Salt, both IVs, WrappedDEK and Ciphertext ever leave the device.
type KeyChainService interface {
	// GenerateEncryptionSalt returns 16 random bytes. The salt is not secret.
	GenerateEncryptionSalt() ([]byte, error)

	// GenerateDEK returns a fresh random 256-bit data-encryption key.
	GenerateDEK() ([]byte, error)

	// GenerateKEK derives the 256-bit key-encryption key from the recovery
	// key and salt.
	GenerateKEK(recoveryKey string, salt []byte) []byte

	// WrapDEK seals dek under kek and returns the sealed key with its IV.
	WrapDEK(dek, kek []byte) (wrapped, iv []byte, err error)

	// UnwrapDEK opens a wrapped DEK. An authentication failure is reported
	// as ErrWrongKey.
	UnwrapDEK(wrapped, iv, kek []byte) ([]byte, error)

	Cipher
}

// Cipher turns an application snapshot into an encrypted payload and back.
type Cipher interface {
	// Encrypt serializes state and seals it under recoveryKey. Every call
	// uses a fresh salt, DEK and IVs.
	Encrypt(state models.AppState, recoveryKey string) (models.EncryptedPayload, error)

	// Decrypt opens payload with recoveryKey. Failures are ErrWrongKey,
	// ErrCorrupted or ErrInvalidFormat.
	Decrypt(payload models.EncryptedPayload, recoveryKey string) (models.AppState, error)
}

// SecretStore persists device-local secrets. Implemented by the local store.
// Getters return (nil, nil) when nothing is stored.
type SecretStore interface {
	GetDeviceSecret(ctx context.Context) ([]byte, error)
	// SaveDeviceSecret keeps an already stored secret; the first save wins.
	SaveDeviceSecret(ctx context.Context, secret []byte) error
	GetRememberedKey(ctx context.Context, userID string) ([]byte, error)
	SaveRememberedKey(ctx context.Context, userID string, sealed []byte) error
	DeleteRememberedKey(ctx context.Context, userID string) error
}

// DeviceKeyring keeps the recovery key at rest on this device, sealed with
// a device-local secret that never leaves the device.
type DeviceKeyring interface {
	Remember(ctx context.Context, userID, recoveryKey string) error
	Recall(ctx context.Context, userID string) (string, error)
	Forget(ctx context.Context, userID string) error
}
