package dto

type SendMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

type SendMessageResponse struct {
	MessageID      string `json:"messageId"`
	ConversationID string `json:"conversationId"`
}

type ChatMessageResponse struct {
	MessageID  string `json:"messageId"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
}

// ChatMessageSentEvent is the in-process message published after every
// successful append, consumed to push chat-list refreshes.
type ChatMessageSentEvent struct {
	ConversationID string `json:"conversation_id"`
	SenderID       string `json:"sender_id"`
	ReceiverID     string `json:"receiver_id"`
	Message        string `json:"message"`
	Timestamp      int64  `json:"timestamp"`
}

type ChatSummaryResponse struct {
	ConversationID string `json:"conversationId"`
	LastMessage    string `json:"lastMessage"`
	Timestamp      int64  `json:"timestamp"`
	ReceiverID     string `json:"receiverId"`
}
