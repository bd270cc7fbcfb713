package service

import (
	"context"
	"sync"

	"shopchat-be/internal/constant"
	"shopchat-be/internal/dto"
	"shopchat-be/internal/pkg/logger"
	"shopchat-be/internal/repository/memory"
	"shopchat-be/pkg/chatbot"
)

type IChatbotService interface {
	SendMessage(ctx context.Context, userID string, req *dto.ChatbotMessageRequest) (*dto.ChatbotMessageResponse, error)
	ResetConversation(userID string)
}

// chatbotService keeps one growing conversation buffer per user, seeded with
// the app-description preamble, and serializes model calls on a single
// in-flight request. A slow call delays the next one, which is fine for the
// one-question-at-a-time assistant flow.
type chatbotService struct {
	client        chatbot.Client
	conversations *memory.ConversationRepository
	logger        logger.ILogger

	mu sync.Mutex
}

func NewChatbotService(client chatbot.Client, conversations *memory.ConversationRepository, log logger.ILogger) IChatbotService {
	return &chatbotService{
		client:        client,
		conversations: conversations,
		logger:        log,
	}
}

func (s *chatbotService) SendMessage(ctx context.Context, userID string, req *dto.ChatbotMessageRequest) (*dto.ChatbotMessageResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv, found := s.conversations.Get(userID)
	if !found {
		conv = &chatbot.Conversation{
			UserID:  userID,
			Context: constant.AssistantPreamble,
		}
	}

	reply, err := s.client.Generate(ctx, conv.Prompt(req.Message))
	if err != nil {
		s.logger.Error("ChatbotService", "Model call failed", map[string]interface{}{"user_id": userID, "error": err.Error()})
		return nil, err
	}

	conv.AppendExchange(req.Message, reply)
	s.conversations.Save(conv)

	return &dto.ChatbotMessageResponse{Reply: reply}, nil
}

func (s *chatbotService) ResetConversation(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations.Delete(userID)
}
