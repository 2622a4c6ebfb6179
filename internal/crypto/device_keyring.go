// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/hkdf"
)

const deviceKeyInfo = "omnifolio:device-key:v1"

// deviceKeyring implements [DeviceKeyring] on top of a [SecretStore].
type deviceKeyring struct {
	store SecretStore

	mu     sync.Mutex
	secret []byte
}

// NewDeviceKeyring returns a keyring that seals recovery keys with a
// per-device secret kept in store. The secret is created on first use.
func NewDeviceKeyring(store SecretStore) DeviceKeyring {
	return &deviceKeyring{store: store}
}

// Remember implements [DeviceKeyring].
func (d *deviceKeyring) Remember(ctx context.Context, userID, recoveryKey string) error {
	key, err := d.sealingKey(ctx, userID)
	if err != nil {
		return err
	}

	sealed, iv, err := seal([]byte(recoveryKey), key)
	if err != nil {
		return fmt.Errorf("sealing recovery key: %w", err)
	}

	return d.store.SaveRememberedKey(ctx, userID, append(iv, sealed...))
}

// Recall implements [DeviceKeyring].
func (d *deviceKeyring) Recall(ctx context.Context, userID string) (string, error) {
	blob, err := d.store.GetRememberedKey(ctx, userID)
	if err != nil {
		return "", err
	}
	if len(blob) <= ivSize {
		return "", ErrKeyNotRemembered
	}

	key, err := d.sealingKey(ctx, userID)
	if err != nil {
		return "", err
	}

	plaintext, err := open(blob[ivSize:], blob[:ivSize], key)
	if err != nil {
		return "", fmt.Errorf("opening remembered key: %w", err)
	}

	return string(plaintext), nil
}

// Forget implements [DeviceKeyring].
func (d *deviceKeyring) Forget(ctx context.Context, userID string) error {
	return d.store.DeleteRememberedKey(ctx, userID)
}

// sealingKey derives the per-user AES key from the device secret.
func (d *deviceKeyring) sealingKey(ctx context.Context, userID string) ([]byte, error) {
	secret, err := d.deviceSecret(ctx)
	if err != nil {
		return nil, err
	}

	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, []byte(userID), []byte(deviceKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("deriving device key: %w", err)
	}
	return key, nil
}

func (d *deviceKeyring) deviceSecret(ctx context.Context) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.secret != nil {
		return d.secret, nil
	}

	secret, err := d.store.GetDeviceSecret(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading device secret: %w", err)
	}
	if len(secret) == keySize {
		d.secret = secret
		return secret, nil
	}

	secret, err = randomBytes(keySize)
	if err != nil {
		return nil, fmt.Errorf("generating device secret: %w", err)
	}
	if err := d.store.SaveDeviceSecret(ctx, secret); err != nil {
		return nil, fmt.Errorf("saving device secret: %w", err)
	}

	// another process may have saved its secret first
	stored, err := d.store.GetDeviceSecret(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading device secret: %w", err)
	}
	if len(stored) != keySize {
		return nil, ErrDeviceSecretUnavailable
	}

	d.secret = stored
	return stored, nil
}
