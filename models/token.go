// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a parsed JWT access token.
//
// The "sub" claim carries the user id that owns the snapshot; the remote
// store scopes every read and write by it.
type Token struct {
	// Token is the underlying parsed JWT.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS form sent in the Authorization header.
	SignedString string `json:"-"`

	// UserID is a cached copy of the subject claim.
	UserID string `json:"-"`
}

// GetUserID returns the subject claim of the token.
func (t *Token) GetUserID() (string, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting UserID from token: %w", err)
	}
	if subject == "" {
		return "", errors.New("token subject is empty")
	}

	return subject, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
