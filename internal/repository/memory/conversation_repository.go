package memory

import (
	"time"

	"shopchat-be/pkg/chatbot"

	"github.com/patrickmn/go-cache"
)

type ConversationRepository struct {
	cache *cache.Cache
}

func NewConversationRepository() *ConversationRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ConversationRepository{
		cache: c,
	}
}

func (r *ConversationRepository) Save(conv *chatbot.Conversation) {
	r.cache.Set(conv.UserID, conv, cache.DefaultExpiration)
}

func (r *ConversationRepository) Get(userID string) (*chatbot.Conversation, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*chatbot.Conversation), true
	}
	return nil, false
}

func (r *ConversationRepository) Delete(userID string) {
	r.cache.Delete(userID)
}
