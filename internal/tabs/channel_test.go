package tabs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-omnifolio/internal/logger"
	"github.com/MKhiriev/go-omnifolio/models"
)

func receive(t *testing.T, ch <-chan models.TabMessage) models.TabMessage {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "subscription closed")
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
	return models.TabMessage{}
}

func TestMemoryHub_DeliversToOthersOnly(t *testing.T) {
	hub := NewMemoryHub()
	a, b, c := hub.Join(), hub.Join(), hub.Join()

	fromA, stopA := a.Subscribe()
	defer stopA()
	fromB, stopB := b.Subscribe()
	defer stopB()
	fromC, stopC := c.Subscribe()
	defer stopC()

	rev := int64(3)
	require.NoError(t, a.Publish(context.Background(), models.TabMessage{Type: models.TabStateChanged, TabID: "a", Rev: &rev}))

	for _, sub := range []<-chan models.TabMessage{fromB, fromC} {
		msg := receive(t, sub)
		assert.Equal(t, models.TabStateChanged, msg.Type)
		assert.Equal(t, int64(3), *msg.Rev)
	}
	assert.Empty(t, fromA)
}

func TestMemoryHub_ClosedMember(t *testing.T) {
	hub := NewMemoryHub()
	a, b := hub.Join(), hub.Join()

	sub, _ := b.Subscribe()
	require.NoError(t, b.Close())

	_, ok := <-sub
	assert.False(t, ok)
	assert.ErrorIs(t, b.Publish(context.Background(), models.TabMessage{}), ErrChannelClosed)
	assert.NoError(t, a.Publish(context.Background(), models.TabMessage{Type: models.TabHeartbeat}))
}

func TestSubscribers_Unsubscribe(t *testing.T) {
	var s subscribers
	ch, unsubscribe := s.add()
	unsubscribe()
	unsubscribe()

	_, ok := <-ch
	assert.False(t, ok)

	s.deliver(models.TabMessage{Type: models.TabClaim})
}

func TestSubscribers_SlowSubscriberDoesNotBlock(t *testing.T) {
	var s subscribers
	ch, unsubscribe := s.add()
	defer unsubscribe()

	for range subscriberBuffer + 10 {
		s.deliver(models.TabMessage{Type: models.TabHeartbeat})
	}
	assert.Len(t, ch, subscriberBuffer)
}

func TestFileChannel_DeliversAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	a, err := NewFileChannel(dir, logger.Nop())
	require.NoError(t, err)
	defer a.Close()
	b, err := NewFileChannel(dir, logger.Nop())
	require.NoError(t, err)
	defer b.Close()

	fromA, stopA := a.Subscribe()
	defer stopA()
	fromB, stopB := b.Subscribe()
	defer stopB()

	rev := int64(12)
	sent := models.TabMessage{Type: models.TabStateChanged, TabID: "tab-a", Timestamp: 1700000000000, Rev: &rev}
	require.NoError(t, a.Publish(context.Background(), sent))

	assert.Equal(t, sent, receive(t, fromB))
	// file channels echo to the sender as well
	assert.Equal(t, sent, receive(t, fromA))
}

func TestFileChannel_IgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()

	c, err := NewFileChannel(dir, logger.Nop())
	require.NoError(t, err)
	defer c.Close()

	sub, stop := c.Subscribe()
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("{}"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.msg"), []byte("not json"), 0o600))
	require.NoError(t, c.Publish(context.Background(), models.TabMessage{Type: models.TabRelease, TabID: "x"}))

	assert.Equal(t, models.TabRelease, receive(t, sub).Type)
}

func TestFileChannel_SweepRemovesStaleFiles(t *testing.T) {
	dir := t.TempDir()

	c, err := NewFileChannel(dir, logger.Nop())
	require.NoError(t, err)
	defer c.Close()

	stale := filepath.Join(dir, "1-old.msg")
	fresh := filepath.Join(dir, "2-new.msg")
	require.NoError(t, os.WriteFile(stale, []byte("{}"), 0o600))
	require.NoError(t, os.WriteFile(fresh, []byte("{}"), 0o600))
	old := time.Now().Add(-time.Minute)
	require.NoError(t, os.Chtimes(stale, old, old))

	c.sweep(time.Now().Add(-DefaultStaleAfter))

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
}

func TestFileChannel_Close(t *testing.T) {
	c, err := NewFileChannel(t.TempDir(), logger.Nop())
	require.NoError(t, err)

	sub, _ := c.Subscribe()
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, ok := <-sub
	assert.False(t, ok)
	assert.ErrorIs(t, c.Publish(context.Background(), models.TabMessage{}), ErrChannelClosed)
}
