package service

import (
	"context"
	"encoding/json"
	"log"

	"shopchat-be/internal/dto"
	"shopchat-be/pkg/chat"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process chat event topic and pushes fresh
// conversation lists to both participants over the hub.
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	summaries *chat.SummaryIndex
	delivery  PushDelivery
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	summaries *chat.SummaryIndex,
	delivery PushDelivery,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		summaries: summaries,
		delivery:  delivery,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.ChatMessageSentEvent
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal chat event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	for _, userID := range []string{payload.SenderID, payload.ReceiverID} {
		owned, err := cs.summaries.List(ctx, userID)
		if err != nil {
			log.Printf("[ERROR] Failed to list summaries for %s: %v", userID, err)
			continue
		}
		if cs.delivery != nil {
			cs.delivery.Send(userID, "chat_list", summaryResponses(owned))
		}
	}

	msg.Ack()
}
