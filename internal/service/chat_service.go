package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"shopchat-be/internal/dto"
	"shopchat-be/internal/pkg/logger"
	"shopchat-be/pkg/chat"
	"shopchat-be/pkg/directory"
	"shopchat-be/pkg/events"
	pktNats "shopchat-be/pkg/nats"
)

var (
	ErrEmptyMessage    = errors.New("message body must not be empty")
	ErrSelfChat        = errors.New("cannot open a conversation with yourself")
	ErrMissingPeer     = errors.New("peer id must not be empty")
	ErrUnauthenticated = errors.New("no authenticated user")
)

type IChatService interface {
	Send(ctx context.Context, senderID, receiverID, text string) (*dto.SendMessageResponse, error)
	History(ctx context.Context, userID, peerID string) ([]dto.ChatMessageResponse, error)
	TailFollow(userID, peerID string, onMessage func(dto.ChatMessageResponse), onError func(error)) (directory.Handle, error)
	Summaries(ctx context.Context, userID string) ([]dto.ChatSummaryResponse, error)
	SubscribeSummaries(userID string, onUpdate func([]dto.ChatSummaryResponse), onError func(error)) (directory.Handle, error)
}

type chatService struct {
	channel        chat.Channel
	summaries      *chat.SummaryIndex
	publisher      IPublisherService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewChatService(
	channel chat.Channel,
	summaries *chat.SummaryIndex,
	publisher IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IChatService {
	return &chatService{
		channel:        channel,
		summaries:      summaries,
		publisher:      publisher,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func validatePair(userID, peerID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if peerID == "" {
		return ErrMissingPeer
	}
	if userID == peerID {
		return ErrSelfChat
	}
	return nil
}

// Send appends a message to the pair's conversation. The body is validated
// before anything touches the store; a rejected send leaves no partial
// state anywhere.
func (s *chatService) Send(ctx context.Context, senderID, receiverID, text string) (*dto.SendMessageResponse, error) {
	if err := validatePair(senderID, receiverID); err != nil {
		return nil, err
	}
	body := strings.TrimSpace(text)
	if body == "" {
		return nil, ErrEmptyMessage
	}

	conversationID := chat.ResolveConversationID(senderID, receiverID)
	now := time.Now().UnixMilli()

	msg := chat.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Body:       body,
		Timestamp:  now,
	}

	messageID, err := s.channel.Append(ctx, conversationID, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to append message: %w", err)
	}

	// Two one-sided upserts, one per participant. Each failure only leaves
	// that side's list entry stale until the next message.
	if err := s.summaries.Touch(ctx, conversationID, senderID, receiverID, body, now); err != nil {
		s.logger.Warn("ChatService", "Failed to touch sender summary", map[string]interface{}{
			"conversation_id": conversationID, "owner": senderID, "error": err.Error(),
		})
	}
	if err := s.summaries.Touch(ctx, conversationID, receiverID, senderID, body, now); err != nil {
		s.logger.Warn("ChatService", "Failed to touch receiver summary", map[string]interface{}{
			"conversation_id": conversationID, "owner": receiverID, "error": err.Error(),
		})
	}

	s.publishMessageSent(ctx, conversationID, senderID, receiverID, body, now)

	return &dto.SendMessageResponse{MessageID: messageID, ConversationID: conversationID}, nil
}

func (s *chatService) publishMessageSent(ctx context.Context, conversationID, senderID, receiverID, body string, atMillis int64) {
	payload, err := json.Marshal(dto.ChatMessageSentEvent{
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Message:        body,
		Timestamp:      atMillis,
	})
	if err == nil && s.publisher != nil {
		if err := s.publisher.Publish(ctx, payload); err != nil {
			s.logger.Warn("ChatService", "Failed to publish in-process chat event", map[string]interface{}{"error": err.Error()})
		}
	}

	if s.eventPublisher != nil {
		evt := events.NewMessageSent(conversationID, senderID, receiverID, body, atMillis)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish MESSAGE_SENT event: %v\n", err)
		}
	}
}

func (s *chatService) History(ctx context.Context, userID, peerID string) ([]dto.ChatMessageResponse, error) {
	if err := validatePair(userID, peerID); err != nil {
		return nil, err
	}
	conversationID := chat.ResolveConversationID(userID, peerID)

	messages, err := s.channel.History(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		out = append(out, messageResponse(m))
	}
	return out, nil
}

func (s *chatService) TailFollow(userID, peerID string, onMessage func(dto.ChatMessageResponse), onError func(error)) (directory.Handle, error) {
	if err := validatePair(userID, peerID); err != nil {
		return nil, err
	}
	conversationID := chat.ResolveConversationID(userID, peerID)

	return s.channel.TailFollow(conversationID, func(m chat.Message) {
		onMessage(messageResponse(m))
	}, onError)
}

func (s *chatService) Summaries(ctx context.Context, userID string) ([]dto.ChatSummaryResponse, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	owned, err := s.summaries.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summaryResponses(owned), nil
}

func (s *chatService) SubscribeSummaries(userID string, onUpdate func([]dto.ChatSummaryResponse), onError func(error)) (directory.Handle, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.summaries.Subscribe(userID, func(owned []chat.OwnedSummary) {
		onUpdate(summaryResponses(owned))
	}, onError)
}

func messageResponse(m chat.Message) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		MessageID:  m.MessageID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Message:    m.Body,
		Timestamp:  m.Timestamp,
	}
}

func summaryResponses(owned []chat.OwnedSummary) []dto.ChatSummaryResponse {
	out := make([]dto.ChatSummaryResponse, 0, len(owned))
	for _, o := range owned {
		out = append(out, dto.ChatSummaryResponse{
			ConversationID: o.ConversationID,
			LastMessage:    o.LastMessage,
			Timestamp:      o.Timestamp,
			ReceiverID:     o.ReceiverID,
		})
	}
	return out
}
