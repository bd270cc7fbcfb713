package service

import (
	"context"
	"strings"
	"testing"

	"shopchat-be/internal/constant"
	"shopchat-be/internal/dto"
	"shopchat-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
)

type fakeModel struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeModel) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestChatbotSeedsPreambleOnFirstMessage(t *testing.T) {
	model := &fakeModel{reply: "The Echo Dot costs ₹4,499."}
	svc := NewChatbotService(model, memory.NewConversationRepository(), testLogger{})

	res, err := svc.SendMessage(context.Background(), "u1", &dto.ChatbotMessageRequest{Message: "How much is the Echo Dot?"})
	assert.NoError(t, err)
	assert.Equal(t, "The Echo Dot costs ₹4,499.", res.Reply)

	assert.Len(t, model.prompts, 1)
	assert.True(t, strings.HasPrefix(model.prompts[0], constant.AssistantPreamble))
	assert.Contains(t, model.prompts[0], "User: How much is the Echo Dot?")
}

func TestChatbotContextGrowsAcrossTurns(t *testing.T) {
	model := &fakeModel{reply: "reply"}
	svc := NewChatbotService(model, memory.NewConversationRepository(), testLogger{})
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "u1", &dto.ChatbotMessageRequest{Message: "first question"})
	assert.NoError(t, err)
	_, err = svc.SendMessage(ctx, "u1", &dto.ChatbotMessageRequest{Message: "second question"})
	assert.NoError(t, err)

	assert.Len(t, model.prompts, 2)
	assert.Contains(t, model.prompts[1], "first question", "earlier turns stay in the prompt")
	assert.Contains(t, model.prompts[1], "Assistant: reply")
	assert.Contains(t, model.prompts[1], "second question")
}

func TestChatbotConversationsAreIsolatedPerUser(t *testing.T) {
	model := &fakeModel{reply: "reply"}
	svc := NewChatbotService(model, memory.NewConversationRepository(), testLogger{})
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "u1", &dto.ChatbotMessageRequest{Message: "only for u1"})
	assert.NoError(t, err)
	_, err = svc.SendMessage(ctx, "u2", &dto.ChatbotMessageRequest{Message: "hello"})
	assert.NoError(t, err)

	assert.NotContains(t, model.prompts[1], "only for u1")
}

func TestChatbotFailedCallDoesNotGrowContext(t *testing.T) {
	model := &fakeModel{err: assert.AnError}
	repo := memory.NewConversationRepository()
	svc := NewChatbotService(model, repo, testLogger{})
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "u1", &dto.ChatbotMessageRequest{Message: "hello"})
	assert.Error(t, err)

	_, found := repo.Get("u1")
	assert.False(t, found, "failed exchange is not saved")
}

func TestChatbotResetConversation(t *testing.T) {
	model := &fakeModel{reply: "reply"}
	repo := memory.NewConversationRepository()
	svc := NewChatbotService(model, repo, testLogger{})
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, "u1", &dto.ChatbotMessageRequest{Message: "remember this"})
	assert.NoError(t, err)

	svc.ResetConversation("u1")

	_, err = svc.SendMessage(ctx, "u1", &dto.ChatbotMessageRequest{Message: "fresh start"})
	assert.NoError(t, err)
	assert.NotContains(t, model.prompts[1], "remember this")
}
