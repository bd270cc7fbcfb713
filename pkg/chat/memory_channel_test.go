package chat

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryChannelAppendStampsIDs(t *testing.T) {
	c := NewMemoryChannel()
	ctx := context.Background()

	id1, err := c.Append(ctx, "a_b", Message{SenderID: "a", ReceiverID: "b", Body: "hi", Timestamp: 1})
	assert.NoError(t, err)
	id2, err := c.Append(ctx, "a_b", Message{SenderID: "b", ReceiverID: "a", Body: "yo", Timestamp: 2})
	assert.NoError(t, err)

	assert.NotEmpty(t, id1)
	assert.NotEqual(t, id1, id2)
	assert.Less(t, id1, id2, "ids should sort in append order")
}

func TestMemoryChannelHistoryOrder(t *testing.T) {
	c := NewMemoryChannel()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := c.Append(ctx, "a_b", Message{SenderID: "a", ReceiverID: "b", Body: fmt.Sprintf("msg-%d", i), Timestamp: int64(i)})
		assert.NoError(t, err)
	}

	history, err := c.History(ctx, "a_b")
	assert.NoError(t, err)
	assert.Len(t, history, 5)
	for i, msg := range history {
		assert.Equal(t, fmt.Sprintf("msg-%d", i), msg.Body)
	}
}

func TestMemoryChannelHistoryIsolatedPerConversation(t *testing.T) {
	c := NewMemoryChannel()
	ctx := context.Background()

	_, err := c.Append(ctx, "a_b", Message{SenderID: "a", ReceiverID: "b", Body: "for b"})
	assert.NoError(t, err)
	_, err = c.Append(ctx, "a_c", Message{SenderID: "a", ReceiverID: "c", Body: "for c"})
	assert.NoError(t, err)

	history, err := c.History(ctx, "a_b")
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, "for b", history[0].Body)
}

func TestMemoryChannelTailFollowReplaysThenFollows(t *testing.T) {
	c := NewMemoryChannel()
	ctx := context.Background()

	_, err := c.Append(ctx, "a_b", Message{SenderID: "a", ReceiverID: "b", Body: "old-1"})
	assert.NoError(t, err)
	_, err = c.Append(ctx, "a_b", Message{SenderID: "b", ReceiverID: "a", Body: "old-2"})
	assert.NoError(t, err)

	var got []string
	handle, err := c.TailFollow("a_b", func(m Message) {
		got = append(got, m.Body)
	}, func(err error) {
		t.Fatalf("unexpected subscription error: %v", err)
	})
	assert.NoError(t, err)
	defer handle.Cancel()

	// Full history arrives before any live append.
	assert.Equal(t, []string{"old-1", "old-2"}, got)

	_, err = c.Append(ctx, "a_b", Message{SenderID: "a", ReceiverID: "b", Body: "live-1"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"old-1", "old-2", "live-1"}, got)
}

func TestMemoryChannelTailFollowSkipsMalformedEntries(t *testing.T) {
	c := NewMemoryChannel()
	ctx := context.Background()

	_, err := c.Append(ctx, "a_b", Message{SenderID: "a", ReceiverID: "b", Body: "good"})
	assert.NoError(t, err)
	c.appendRaw("a_b", []byte("{not json"))
	_, err = c.Append(ctx, "a_b", Message{SenderID: "b", ReceiverID: "a", Body: "also good"})
	assert.NoError(t, err)

	var got []string
	handle, err := c.TailFollow("a_b", func(m Message) {
		got = append(got, m.Body)
	}, nil)
	assert.NoError(t, err)
	defer handle.Cancel()

	assert.Equal(t, []string{"good", "also good"}, got)

	history, err := c.History(ctx, "a_b")
	assert.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestMemoryChannelCancelStopsDelivery(t *testing.T) {
	c := NewMemoryChannel()
	ctx := context.Background()

	var count int
	handle, err := c.TailFollow("a_b", func(m Message) {
		count++
	}, nil)
	assert.NoError(t, err)

	_, err = c.Append(ctx, "a_b", Message{SenderID: "a", ReceiverID: "b", Body: "one"})
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	handle.Cancel()
	handle.Cancel() // idempotent

	_, err = c.Append(ctx, "a_b", Message{SenderID: "a", ReceiverID: "b", Body: "two"})
	assert.NoError(t, err)
	assert.Equal(t, 1, count, "no delivery after cancel")
}
