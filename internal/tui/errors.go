// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-omnifolio/internal/adapter"
	"github.com/MKhiriev/go-omnifolio/internal/crypto"
)

// ErrUserQuit is returned by Run when the user leaves the program.
var ErrUserQuit = errors.New("user quit the program")

func humanizeError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, crypto.ErrInvalidKey):
		return "The recovery key looks like XXXX-XXXX-XXXX-XXXX"
	case errors.Is(err, crypto.ErrWrongKey):
		return "The recovery key does not open this portfolio"
	case errors.Is(err, adapter.ErrUnauthorized):
		return "The access token was rejected by the server"
	case errors.Is(err, adapter.ErrNetwork), errors.Is(err, adapter.ErrServerUnavailable):
		return "No network or the server is unavailable"
	}

	return err.Error()
}
