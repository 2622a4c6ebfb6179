package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-omnifolio/models"
)

func validSnapshot() models.RemoteSnapshot {
	return models.RemoteSnapshot{
		UserID:        "u1",
		Rev:           3,
		SchemaVersion: 2,
		EncryptedPayload: models.EncryptedPayload{
			Ciphertext: "Y2lwaGVy",
			IV:         "aXY=",
			Salt:       "c2FsdA==",
			WrappedDEK: "ZGVr",
			DEKIV:      "ZGVraXY=",
		},
	}
}

func TestNewSnapshotValidator(t *testing.T) {
	v := NewSnapshotValidator()
	require.NotNil(t, v)
}

func TestSnapshotValidator_Validate_Dispatch(t *testing.T) {
	v := NewSnapshotValidator()
	ctx := context.Background()
	snap := validSnapshot()
	req := models.PushRequest{Rev: snap.Rev, SchemaVersion: snap.SchemaVersion, EncryptedPayload: snap.EncryptedPayload}

	assert.NoError(t, v.Validate(ctx, snap))
	assert.NoError(t, v.Validate(ctx, &snap))
	assert.NoError(t, v.Validate(ctx, req))
	assert.NoError(t, v.Validate(ctx, &req))
	assert.ErrorIs(t, v.Validate(ctx, "snapshot"), ErrUnsupportedType)
}

func TestSnapshotValidator_Validate_Snapshot(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.RemoteSnapshot)
		fields  []string
		wantErr error
	}{
		{name: "valid", mutate: func(*models.RemoteSnapshot) {}},
		{name: "rev zero is valid", mutate: func(s *models.RemoteSnapshot) { s.Rev = 0 }},
		{name: "no user", mutate: func(s *models.RemoteSnapshot) { s.UserID = "" }, wantErr: ErrInvalidUserID},
		{name: "negative rev", mutate: func(s *models.RemoteSnapshot) { s.Rev = -1 }, wantErr: ErrInvalidRev},
		{name: "no schema version", mutate: func(s *models.RemoteSnapshot) { s.SchemaVersion = 0 }, wantErr: ErrInvalidSchemaVersion},
		{name: "empty salt", mutate: func(s *models.RemoteSnapshot) { s.Salt = "" }, wantErr: ErrIncompletePayload},
		{name: "empty dek iv", mutate: func(s *models.RemoteSnapshot) { s.DEKIV = "" }, wantErr: ErrIncompletePayload},
		{name: "ciphertext not base64", mutate: func(s *models.RemoteSnapshot) { s.Ciphertext = "not base64!" }, wantErr: ErrMalformedPayload},
		{
			name:   "scoped to rev ignores the payload",
			mutate: func(s *models.RemoteSnapshot) { s.Ciphertext = "" },
			fields: []string{FieldRev},
		},
		{
			name:    "unknown field",
			mutate:  func(*models.RemoteSnapshot) {},
			fields:  []string{"hash"},
			wantErr: ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := validSnapshot()
			tt.mutate(&snap)

			err := NewSnapshotValidator().Validate(context.Background(), snap, tt.fields...)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestSnapshotValidator_Validate_PushRequest(t *testing.T) {
	v := NewSnapshotValidator()
	ctx := context.Background()

	t.Run("push request has no owner", func(t *testing.T) {
		req := models.PushRequest{Rev: 1, SchemaVersion: 2, EncryptedPayload: validSnapshot().EncryptedPayload}

		require.NoError(t, v.Validate(ctx, req))
	})

	t.Run("owner field is unknown for a push request", func(t *testing.T) {
		req := models.PushRequest{Rev: 1, SchemaVersion: 2, EncryptedPayload: validSnapshot().EncryptedPayload}

		require.ErrorIs(t, v.Validate(ctx, req, FieldUserID), ErrUnknownField)
	})

	t.Run("incomplete payload", func(t *testing.T) {
		req := models.PushRequest{Rev: 1, SchemaVersion: 2}

		err := v.Validate(ctx, req)

		require.ErrorIs(t, err, ErrIncompletePayload)
		assert.Contains(t, err.Error(), "ciphertext")
	})
}
