package chat

import (
	"context"

	"shopchat-be/pkg/directory"
)

// Message is one immutable entry in a conversation's append-only log.
// Ordering within a conversation is the channel's append order; the
// timestamp is sender-assigned and used for display only.
type Message struct {
	MessageID  string `json:"messageId"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Body       string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
}

// Channel is the shared per-conversation ordered message log.
type Channel interface {
	// Append stamps msg with a new store-assigned id, writes it, and
	// returns the id. The write is durable on return.
	Append(ctx context.Context, conversationID string, msg Message) (string, error)

	// History returns all messages appended so far, in append order.
	History(ctx context.Context, conversationID string) ([]Message, error)

	// TailFollow delivers the full existing history and then every live
	// append, strictly in store-assigned order. Entries that cannot be
	// deserialized are skipped, not surfaced. onError fires only when the
	// subscription itself fails.
	TailFollow(conversationID string, onMessage func(Message), onError func(error)) (directory.Handle, error)
}
