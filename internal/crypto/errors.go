// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrWrongKey means AES-GCM authentication failed while unwrapping the
	// DEK or opening the ciphertext.
	ErrWrongKey = errors.New("wrong recovery key")
	// ErrCorrupted means the payload encoding or the decrypted JSON is broken.
	ErrCorrupted = errors.New("encrypted payload is corrupted")
	// ErrInvalidFormat means the decrypted JSON lacks required state fields.
	ErrInvalidFormat = errors.New("decrypted state has invalid format")
	// ErrInvalidKey means a recovery key does not match the expected format.
	ErrInvalidKey = errors.New("invalid recovery key format")
	// ErrKeyNotRemembered means no recovery key is stored on this device.
	ErrKeyNotRemembered = errors.New("recovery key is not remembered on this device")
	// ErrDeviceSecretUnavailable means the device secret could not be read
	// back after it was saved.
	ErrDeviceSecretUnavailable = errors.New("device secret is unavailable")
)
