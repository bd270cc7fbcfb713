package service

import (
	"context"
	"testing"

	"shopchat-be/internal/dto"
	"shopchat-be/pkg/chat"
	"shopchat-be/pkg/directory"

	"github.com/stretchr/testify/assert"
)

type recordingPublisher struct {
	payloads [][]byte
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

type countingChannel struct {
	*chat.MemoryChannel
	appendCalls int
}

func (c *countingChannel) Append(ctx context.Context, conversationID string, msg chat.Message) (string, error) {
	c.appendCalls++
	return c.MemoryChannel.Append(ctx, conversationID, msg)
}

func newChatFixture() (IChatService, *countingChannel, *chat.SummaryIndex, *recordingPublisher) {
	store := directory.NewMemoryStore()
	channel := &countingChannel{MemoryChannel: chat.NewMemoryChannel()}
	summaries := chat.NewSummaryIndex(store)
	publisher := &recordingPublisher{}
	svc := NewChatService(channel, summaries, publisher, nil, testLogger{})
	return svc, channel, summaries, publisher
}

func TestSendRejectsEmptyBodyBeforeAnyStoreCall(t *testing.T) {
	svc, channel, summaries, publisher := newChatFixture()
	ctx := context.Background()

	for _, body := range []string{"", "   ", "\n\t"} {
		_, err := svc.Send(ctx, "alice", "bob", body)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}

	assert.Zero(t, channel.appendCalls, "rejected sends must not touch the channel")
	assert.Empty(t, publisher.payloads)

	aliceSide, err := summaries.List(ctx, "alice")
	assert.NoError(t, err)
	assert.Empty(t, aliceSide, "rejected sends must not touch the summary index")
}

func TestSendRejectsSelfChatAndMissingIDs(t *testing.T) {
	svc, channel, _, _ := newChatFixture()
	ctx := context.Background()

	_, err := svc.Send(ctx, "alice", "alice", "hi")
	assert.ErrorIs(t, err, ErrSelfChat)

	_, err = svc.Send(ctx, "", "bob", "hi")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = svc.Send(ctx, "alice", "", "hi")
	assert.ErrorIs(t, err, ErrMissingPeer)

	assert.Zero(t, channel.appendCalls)
}

func TestSendAppendsAndTouchesBothSummaries(t *testing.T) {
	svc, _, summaries, publisher := newChatFixture()
	ctx := context.Background()

	res, err := svc.Send(ctx, "bob", "alice", "  hello there  ")
	assert.NoError(t, err)
	assert.Equal(t, "alice_bob", res.ConversationID, "conversation id is order-independent")
	assert.NotEmpty(t, res.MessageID)

	history, err := svc.History(ctx, "alice", "bob")
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, "hello there", history[0].Message, "body is trimmed")
	assert.Equal(t, "bob", history[0].SenderID)

	for _, owner := range []string{"alice", "bob"} {
		side, err := summaries.List(ctx, owner)
		assert.NoError(t, err)
		assert.Len(t, side, 1)
		assert.Equal(t, "hello there", side[0].LastMessage)
	}

	aliceSide, _ := summaries.List(ctx, "alice")
	bobSide, _ := summaries.List(ctx, "bob")
	assert.Equal(t, "bob", aliceSide[0].ReceiverID, "each side points at the other participant")
	assert.Equal(t, "alice", bobSide[0].ReceiverID)

	assert.Len(t, publisher.payloads, 1)
}

func TestHistoryIsSymmetricForBothParticipants(t *testing.T) {
	svc, _, _, _ := newChatFixture()
	ctx := context.Background()

	_, err := svc.Send(ctx, "alice", "bob", "one")
	assert.NoError(t, err)
	_, err = svc.Send(ctx, "bob", "alice", "two")
	assert.NoError(t, err)

	fromAlice, err := svc.History(ctx, "alice", "bob")
	assert.NoError(t, err)
	fromBob, err := svc.History(ctx, "bob", "alice")
	assert.NoError(t, err)

	assert.Equal(t, fromAlice, fromBob)
	assert.Equal(t, "one", fromAlice[0].Message)
	assert.Equal(t, "two", fromAlice[1].Message)
}

func TestTailFollowStreamsHistoryThenLive(t *testing.T) {
	svc, _, _, _ := newChatFixture()
	ctx := context.Background()

	_, err := svc.Send(ctx, "alice", "bob", "old")
	assert.NoError(t, err)

	var got []string
	handle, err := svc.TailFollow("bob", "alice", func(m dto.ChatMessageResponse) {
		got = append(got, m.Message)
	}, nil)
	assert.NoError(t, err)
	defer handle.Cancel()

	assert.Equal(t, []string{"old"}, got)

	_, err = svc.Send(ctx, "bob", "alice", "new")
	assert.NoError(t, err)
	assert.Equal(t, []string{"old", "new"}, got)
}

func TestSummariesOrderedByStoreKey(t *testing.T) {
	svc, _, _, _ := newChatFixture()
	ctx := context.Background()

	_, err := svc.Send(ctx, "alice", "bob", "to bob")
	assert.NoError(t, err)
	_, err = svc.Send(ctx, "alice", "carol", "to carol")
	assert.NoError(t, err)

	got, err := svc.Summaries(ctx, "alice")
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "alice_bob", got[0].ConversationID)
	assert.Equal(t, "alice_carol", got[1].ConversationID)
}
