package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "MESSAGE_SENT").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation services publish directly.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event type codes used across the chat domain.
const (
	TypeUserLogin   = "USER_LOGIN"
	TypeMessageSent = "MESSAGE_SENT"
)

// NewMessageSent builds the event published after a successful append.
func NewMessageSent(conversationID, senderID, receiverID, body string, atMillis int64) BaseEvent {
	return BaseEvent{
		Type: TypeMessageSent,
		Data: map[string]interface{}{
			"conversation_id": conversationID,
			"sender_id":       senderID,
			"receiver_id":     receiverID,
			"message":         body,
			"timestamp":       atMillis,
		},
		OccurredAt: time.Now(),
	}
}
