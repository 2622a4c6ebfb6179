package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/internal/mock"
	"github.com/MKhiriev/go-omnifolio/internal/store"
	"github.com/MKhiriev/go-omnifolio/models"
)

func validPush(rev int64) models.PushRequest {
	return models.PushRequest{
		Rev:           rev,
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

func newTestSnapshotService(t *testing.T) (SnapshotService, *mock.MockSnapshotRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mock.NewMockSnapshotRepository(ctrl)
	return NewSnapshotService(repo, logger.Nop()), repo
}

// ─────────────────────────────────────────────
// Push
// ─────────────────────────────────────────────

func TestSnapshotService_Push_Success(t *testing.T) {
	svc, repo := newTestSnapshotService(t)
	now := time.Now().UTC()

	repo.EXPECT().
		SaveSnapshot(gomock.Any(), gomock.Cond(func(x any) bool {
			snap, ok := x.(models.RemoteSnapshot)
			return ok && snap.UserID == "u1" && snap.Rev == 3 && snap.Ciphertext == "Y2lwaGVy"
		})).
		Return(models.PushResponse{Rev: 3, UpdatedAt: now}, nil)

	resp, err := svc.Push(context.Background(), "u1", validPush(3))

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Rev)
	assert.Equal(t, now, resp.UpdatedAt)
}

func TestSnapshotService_Push_InvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		mutate func(*models.PushRequest)
	}{
		{name: "no user", userID: "", mutate: func(*models.PushRequest) {}},
		{name: "negative rev", userID: "u1", mutate: func(r *models.PushRequest) { r.Rev = -1 }},
		{name: "no schema", userID: "u1", mutate: func(r *models.PushRequest) { r.SchemaVersion = 0 }},
		{name: "no ciphertext", userID: "u1", mutate: func(r *models.PushRequest) { r.Ciphertext = "" }},
		{name: "no wrapped dek", userID: "u1", mutate: func(r *models.PushRequest) { r.WrappedDEK = "" }},
		{name: "iv not base64", userID: "u1", mutate: func(r *models.PushRequest) { r.IV = "%%%" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestSnapshotService(t)
			req := validPush(1)
			tt.mutate(&req)

			_, err := svc.Push(context.Background(), tt.userID, req)

			require.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestSnapshotService_Push_Conflict(t *testing.T) {
	svc, repo := newTestSnapshotService(t)
	repo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(models.PushResponse{}, &store.ConflictError{CurrentRev: 7})

	events, unsubscribe := svc.Subscribe("u1")
	defer unsubscribe()

	_, err := svc.Push(context.Background(), "u1", validPush(5))

	var conflict *store.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(7), conflict.CurrentRev)
	assert.ErrorIs(t, err, store.ErrRevisionConflict)
	assert.Empty(t, events)
}

func TestSnapshotService_Push_StorageError(t *testing.T) {
	svc, repo := newTestSnapshotService(t)
	repo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(models.PushResponse{}, store.ErrStorageUnavailable)

	_, err := svc.Push(context.Background(), "u1", validPush(5))

	require.ErrorIs(t, err, store.ErrStorageUnavailable)
}

func TestSnapshotService_Push_NotifiesSubscribersOfTheUser(t *testing.T) {
	svc, repo := newTestSnapshotService(t)
	now := time.Now().UTC()
	repo.EXPECT().SaveSnapshot(gomock.Any(), gomock.Any()).Return(models.PushResponse{Rev: 4, UpdatedAt: now}, nil)

	mine, unsubscribeMine := svc.Subscribe("u1")
	defer unsubscribeMine()
	theirs, unsubscribeTheirs := svc.Subscribe("u2")
	defer unsubscribeTheirs()

	_, err := svc.Push(context.Background(), "u1", validPush(4))
	require.NoError(t, err)

	select {
	case ev := <-mine:
		assert.Equal(t, models.SnapshotEvent{Rev: 4, UpdatedAt: now}, ev)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
	assert.Empty(t, theirs)
}

func TestSnapshotService_Subscribe_UnsubscribeClosesChannel(t *testing.T) {
	svc, _ := newTestSnapshotService(t)

	events, unsubscribe := svc.Subscribe("u1")
	unsubscribe()
	unsubscribe()

	_, open := <-events
	assert.False(t, open)
}

// ─────────────────────────────────────────────
// Pull
// ─────────────────────────────────────────────

func TestSnapshotService_Pull(t *testing.T) {
	t.Run("stored snapshot", func(t *testing.T) {
		svc, repo := newTestSnapshotService(t)
		snap := models.RemoteSnapshot{UserID: "u1", Rev: 9, SchemaVersion: 2}
		repo.EXPECT().GetSnapshot(gomock.Any(), "u1").Return(snap, nil)

		resp, err := svc.Pull(context.Background(), "u1")

		require.NoError(t, err)
		assert.True(t, resp.Exists)
		require.NotNil(t, resp.Data)
		assert.Equal(t, int64(9), resp.Data.Rev)
	})

	t.Run("nothing stored", func(t *testing.T) {
		svc, repo := newTestSnapshotService(t)
		repo.EXPECT().GetSnapshot(gomock.Any(), "u1").Return(models.RemoteSnapshot{}, store.ErrSnapshotNotFound)

		resp, err := svc.Pull(context.Background(), "u1")

		require.NoError(t, err)
		assert.False(t, resp.Exists)
		assert.Nil(t, resp.Data)
	})

	t.Run("storage error", func(t *testing.T) {
		svc, repo := newTestSnapshotService(t)
		repo.EXPECT().GetSnapshot(gomock.Any(), "u1").Return(models.RemoteSnapshot{}, errors.New("connection reset"))

		_, err := svc.Pull(context.Background(), "u1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("no user", func(t *testing.T) {
		svc, _ := newTestSnapshotService(t)

		_, err := svc.Pull(context.Background(), "")

		require.ErrorIs(t, err, ErrInvalidDataProvided)
	})
}
