// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-omnifolio/internal/state"
	"github.com/MKhiriev/go-omnifolio/models"
)

// Encrypt implements [Cipher].
func (k *keyChainService) Encrypt(st models.AppState, recoveryKey string) (models.EncryptedPayload, error) {
	plaintext, err := json.Marshal(st)
	if err != nil {
		return models.EncryptedPayload{}, fmt.Errorf("marshalling state: %w", err)
	}

	salt, err := k.GenerateEncryptionSalt()
	if err != nil {
		return models.EncryptedPayload{}, fmt.Errorf("generating salt: %w", err)
	}
	dek, err := k.GenerateDEK()
	if err != nil {
		return models.EncryptedPayload{}, fmt.Errorf("generating DEK: %w", err)
	}

	kek := k.GenerateKEK(recoveryKey, salt)
	wrapped, dekIV, err := k.WrapDEK(dek, kek)
	if err != nil {
		return models.EncryptedPayload{}, fmt.Errorf("wrapping DEK: %w", err)
	}

	ciphertext, iv, err := seal(plaintext, dek)
	if err != nil {
		return models.EncryptedPayload{}, fmt.Errorf("sealing state: %w", err)
	}

	enc := base64.StdEncoding.EncodeToString
	return models.EncryptedPayload{
		Ciphertext: enc(ciphertext),
		IV:         enc(iv),
		Salt:       enc(salt),
		WrappedDEK: enc(wrapped),
		DEKIV:      enc(dekIV),
	}, nil
}

// Decrypt implements [Cipher].
func (k *keyChainService) Decrypt(payload models.EncryptedPayload, recoveryKey string) (models.AppState, error) {
	raw, err := decodePayload(payload)
	if err != nil {
		return models.AppState{}, err
	}

	kek := k.GenerateKEK(recoveryKey, raw.salt)
	dek, err := k.UnwrapDEK(raw.wrappedDEK, raw.dekIV, kek)
	if err != nil {
		return models.AppState{}, err
	}

	plaintext, err := open(raw.ciphertext, raw.iv, dek)
	if err != nil {
		return models.AppState{}, fmt.Errorf("opening state: %w", err)
	}

	return decodeState(plaintext)
}

type rawPayload struct {
	ciphertext, iv, salt, wrappedDEK, dekIV []byte
}

func decodePayload(p models.EncryptedPayload) (rawPayload, error) {
	var raw rawPayload
	fields := []struct {
		name  string
		value string
		dst   *[]byte
	}{
		{"ciphertext", p.Ciphertext, &raw.ciphertext},
		{"iv", p.IV, &raw.iv},
		{"salt", p.Salt, &raw.salt},
		{"wrappedDek", p.WrappedDEK, &raw.wrappedDEK},
		{"dekIv", p.DEKIV, &raw.dekIV},
	}

	for _, f := range fields {
		if f.value == "" {
			return rawPayload{}, fmt.Errorf("%w: %s is empty", ErrCorrupted, f.name)
		}
		b, err := base64.StdEncoding.DecodeString(f.value)
		if err != nil {
			return rawPayload{}, fmt.Errorf("%w: %s: %w", ErrCorrupted, f.name, err)
		}
		*f.dst = b
	}

	return raw, nil
}

func decodeState(plaintext []byte) (models.AppState, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(plaintext, &top); err != nil {
		return models.AppState{}, fmt.Errorf("%w: %w", ErrCorrupted, err)
	}

	for _, field := range state.RequiredFields {
		if _, ok := top[field]; !ok {
			return models.AppState{}, fmt.Errorf("%w: missing %q", ErrInvalidFormat, field)
		}
	}

	var st models.AppState
	if err := json.Unmarshal(plaintext, &st); err != nil {
		return models.AppState{}, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	return state.Migrate(st), nil
}
