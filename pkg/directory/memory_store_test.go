package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreWriteReadOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, s.Write(ctx, "users", "u1", map[string]string{"name": "one"}))
	assert.NoError(t, s.Write(ctx, "users", "u2", map[string]string{"name": "two"}))
	assert.NoError(t, s.Write(ctx, "users", "u1", map[string]string{"name": "one updated"}))

	snap, err := s.Read(ctx, "users")
	assert.NoError(t, err)
	assert.Len(t, snap, 2)
	// Re-writing an existing key keeps its original position.
	assert.Equal(t, "u1", snap[0].Key)
	assert.Equal(t, "u2", snap[1].Key)

	val, ok := snap.Get("u1")
	assert.True(t, ok)
	assert.JSONEq(t, `{"name":"one updated"}`, string(val))

	_, ok = snap.Get("missing")
	assert.False(t, ok)
}

func TestMemoryStoreSubtreesAreIsolated(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, s.Write(ctx, "userChats/a", "a_b", map[string]string{"lastMessage": "hi"}))

	snap, err := s.Read(ctx, "userChats/b")
	assert.NoError(t, err)
	assert.Empty(t, snap)
}

func TestMemoryStoreSubscribeDeliversInitialSnapshot(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, s.Write(ctx, "users", "u1", map[string]string{"name": "one"}))

	var snapshots []Snapshot
	handle, err := s.Subscribe("users", func(snap Snapshot) {
		snapshots = append(snapshots, snap)
	}, nil)
	assert.NoError(t, err)
	defer handle.Cancel()

	assert.Len(t, snapshots, 1, "initial snapshot fires immediately")
	assert.Len(t, snapshots[0], 1)

	assert.NoError(t, s.Write(ctx, "users", "u2", map[string]string{"name": "two"}))
	assert.Len(t, snapshots, 2)
	assert.Len(t, snapshots[1], 2)
}

func TestMemoryStoreCancelIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var count int
	handle, err := s.Subscribe("users", func(Snapshot) { count++ }, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	handle.Cancel()
	handle.Cancel()

	assert.NoError(t, s.Write(ctx, "users", "u1", map[string]string{"name": "one"}))
	assert.Equal(t, 1, count, "no delivery after cancel")
}

func TestMemoryStorePushKeyAllocatesInOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	k1, err := s.PushKey(ctx, "messages/a_b")
	assert.NoError(t, err)
	k2, err := s.PushKey(ctx, "messages/a_b")
	assert.NoError(t, err)

	assert.NotEqual(t, k1, k2)
	assert.Less(t, k1, k2)

	// Independent sequence per path.
	other, err := s.PushKey(ctx, "messages/c_d")
	assert.NoError(t, err)
	assert.Equal(t, k1, other)
}
