// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/MKhiriev/go-omnifolio/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldUserID targets the owner of a stored snapshot.
	FieldUserID = "user_id"

	// FieldRev targets the revision counter.
	FieldRev = "rev"

	// FieldSchemaVersion targets the snapshot layout version.
	FieldSchemaVersion = "schema_version"

	// FieldPayload targets the five base64 fields of the envelope.
	FieldPayload = "payload"
)

// SnapshotValidator implements Validator for models.PushRequest and
// models.RemoteSnapshot, by value or by pointer.
type SnapshotValidator struct{}

func NewSnapshotValidator() Validator {
	return &SnapshotValidator{}
}

// Validate dispatches on the type of obj. A PushRequest has no owner, so
// FieldUserID is not part of its default set.
func (v *SnapshotValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RemoteSnapshot:
		return v.validateSnapshot(value, fields...)
	case *models.RemoteSnapshot:
		return v.validateSnapshot(*value, fields...)

	case models.PushRequest:
		return v.validatePushRequest(value, fields...)
	case *models.PushRequest:
		return v.validatePushRequest(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *SnapshotValidator) validateSnapshot(snap models.RemoteSnapshot, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldRev, FieldSchemaVersion, FieldPayload}
	}

	for _, f := range fields {
		if f == FieldUserID {
			if snap.UserID == "" {
				return ErrInvalidUserID
			}
			continue
		}
		if err := v.validateField(f, snap.Rev, snap.SchemaVersion, snap.EncryptedPayload); err != nil {
			return err
		}
	}

	return nil
}

func (v *SnapshotValidator) validatePushRequest(req models.PushRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRev, FieldSchemaVersion, FieldPayload}
	}

	for _, f := range fields {
		if err := v.validateField(f, req.Rev, req.SchemaVersion, req.EncryptedPayload); err != nil {
			return err
		}
	}

	return nil
}

func (v *SnapshotValidator) validateField(field string, rev int64, schemaVersion int, payload models.EncryptedPayload) error {
	switch field {
	case FieldRev:
		if rev < 0 {
			return ErrInvalidRev
		}
	case FieldSchemaVersion:
		if schemaVersion <= 0 {
			return ErrInvalidSchemaVersion
		}
	case FieldPayload:
		return validatePayload(payload)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	return nil
}

func validatePayload(p models.EncryptedPayload) error {
	parts := []struct {
		name  string
		value string
	}{
		{"ciphertext", p.Ciphertext},
		{"iv", p.IV},
		{"salt", p.Salt},
		{"wrappedDek", p.WrappedDEK},
		{"dekIv", p.DEKIV},
	}

	for _, part := range parts {
		if part.value == "" {
			return fmt.Errorf("%w: %s is empty", ErrIncompletePayload, part.name)
		}
		if _, err := base64.StdEncoding.DecodeString(part.value); err != nil {
			return fmt.Errorf("%w: %s", ErrMalformedPayload, part.name)
		}
	}

	return nil
}
