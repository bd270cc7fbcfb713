package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"shopchat-be/pkg/directory"
)

// MemoryChannel is a single-process Channel used by tests and local
// development. Entries are kept as raw payloads so the malformed-entry
// skip policy behaves the same as the remote implementation.
type MemoryChannel struct {
	mu      sync.Mutex
	logs    map[string]*memLog
	nextSub int
}

type memLog struct {
	entries [][]byte
	seq     uint64
	subs    map[int]*memChanSub
}

type memChanSub struct {
	onMessage func(Message)
	cancelled atomic.Bool
}

func NewMemoryChannel() *MemoryChannel {
	return &MemoryChannel{logs: make(map[string]*memLog)}
}

func (c *MemoryChannel) log(conversationID string) *memLog {
	l, ok := c.logs[conversationID]
	if !ok {
		l = &memLog{subs: make(map[int]*memChanSub)}
		c.logs[conversationID] = l
	}
	return l
}

func (c *MemoryChannel) Append(ctx context.Context, conversationID string, msg Message) (string, error) {
	c.mu.Lock()
	l := c.log(conversationID)
	l.seq++
	msg.MessageID = fmt.Sprintf("m%012d", l.seq)
	data, err := json.Marshal(msg)
	if err != nil {
		c.mu.Unlock()
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}
	l.entries = append(l.entries, data)
	subs := make([]*memChanSub, 0, len(l.subs))
	for _, sub := range l.subs {
		subs = append(subs, sub)
	}
	c.mu.Unlock()

	for _, sub := range subs {
		if !sub.cancelled.Load() {
			sub.onMessage(msg)
		}
	}
	return msg.MessageID, nil
}

// appendRaw injects an undecoded entry, bypassing Append's stamping. Used by
// tests to exercise the malformed-entry skip policy.
func (c *MemoryChannel) appendRaw(conversationID string, data []byte) {
	c.mu.Lock()
	l := c.log(conversationID)
	l.entries = append(l.entries, data)
	c.mu.Unlock()
}

func (c *MemoryChannel) History(ctx context.Context, conversationID string) ([]Message, error) {
	c.mu.Lock()
	entries := append([][]byte(nil), c.log(conversationID).entries...)
	c.mu.Unlock()

	messages := make([]Message, 0, len(entries))
	for _, data := range entries {
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func (c *MemoryChannel) TailFollow(conversationID string, onMessage func(Message), onError func(error)) (directory.Handle, error) {
	c.mu.Lock()
	l := c.log(conversationID)
	id := c.nextSub
	c.nextSub++
	sub := &memChanSub{onMessage: onMessage}
	l.subs[id] = sub
	entries := append([][]byte(nil), l.entries...)
	c.mu.Unlock()

	for _, data := range entries {
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		onMessage(msg)
	}

	return directory.NewHandle(func() {
		sub.cancelled.Store(true)
		c.mu.Lock()
		delete(l.subs, id)
		c.mu.Unlock()
	}), nil
}
