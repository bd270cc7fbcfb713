package chat

import (
	"context"
	"testing"

	"shopchat-be/pkg/directory"

	"github.com/stretchr/testify/assert"
)

func TestSummaryIndexTouchAndList(t *testing.T) {
	store := directory.NewMemoryStore()
	idx := NewSummaryIndex(store)
	ctx := context.Background()

	assert.NoError(t, idx.Touch(ctx, "alice_bob", "alice", "bob", "hello", 100))
	assert.NoError(t, idx.Touch(ctx, "alice_bob", "bob", "alice", "hello", 100))

	aliceSide, err := idx.List(ctx, "alice")
	assert.NoError(t, err)
	assert.Len(t, aliceSide, 1)
	assert.Equal(t, "alice_bob", aliceSide[0].ConversationID)
	assert.Equal(t, "hello", aliceSide[0].LastMessage)
	assert.Equal(t, "bob", aliceSide[0].ReceiverID)
	assert.Equal(t, int64(100), aliceSide[0].Timestamp)

	bobSide, err := idx.List(ctx, "bob")
	assert.NoError(t, err)
	assert.Len(t, bobSide, 1)
	assert.Equal(t, "alice", bobSide[0].ReceiverID)
}

func TestSummaryIndexTouchOverwrites(t *testing.T) {
	store := directory.NewMemoryStore()
	idx := NewSummaryIndex(store)
	ctx := context.Background()

	assert.NoError(t, idx.Touch(ctx, "alice_bob", "alice", "bob", "first", 100))
	assert.NoError(t, idx.Touch(ctx, "alice_bob", "alice", "bob", "second", 200))

	got, err := idx.List(ctx, "alice")
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "second", got[0].LastMessage)
	assert.Equal(t, int64(200), got[0].Timestamp)
}

func TestSummaryIndexSubscribe(t *testing.T) {
	store := directory.NewMemoryStore()
	idx := NewSummaryIndex(store)
	ctx := context.Background()

	var updates [][]OwnedSummary
	handle, err := idx.Subscribe("alice", func(s []OwnedSummary) {
		updates = append(updates, s)
	}, nil)
	assert.NoError(t, err)
	defer handle.Cancel()

	assert.Len(t, updates, 1)
	assert.Empty(t, updates[0])

	assert.NoError(t, idx.Touch(ctx, "alice_bob", "alice", "bob", "hey", 100))
	assert.Len(t, updates, 2)
	assert.Len(t, updates[1], 1)
	assert.Equal(t, "hey", updates[1][0].LastMessage)
}

func TestSummaryIndexSkipsMalformedEntries(t *testing.T) {
	store := directory.NewMemoryStore()
	idx := NewSummaryIndex(store)
	ctx := context.Background()

	assert.NoError(t, store.Write(ctx, "userChats/alice", "junk", "not-an-object"))
	assert.NoError(t, idx.Touch(ctx, "alice_bob", "alice", "bob", "ok", 100))

	got, err := idx.List(ctx, "alice")
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "alice_bob", got[0].ConversationID)
}
