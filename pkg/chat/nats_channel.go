package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopchat-be/pkg/directory"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/nats-io/nuid"
)

const (
	chatStreamName    = "CHATS"
	chatSubjectPrefix = "chats."
)

// NatsChannel implements Channel on a JetStream stream with one subject per
// conversation. Stream sequence numbers provide the append order every
// subscriber observes; message ids are allocated client-side before the
// write, like a push key.
type NatsChannel struct {
	js jetstream.JetStream
}

func NewNatsChannel(nc *nats.Conn) (*NatsChannel, error) {
	js, err := jetstream.New(nc)
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      chatStreamName,
		Subjects:  []string{chatSubjectPrefix + ">"},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure stream %q: %w", chatStreamName, err)
	}

	return &NatsChannel{js: js}, nil
}

func subjectFor(conversationID string) string {
	return chatSubjectPrefix + conversationID
}

func (c *NatsChannel) Append(ctx context.Context, conversationID string, msg Message) (string, error) {
	msg.MessageID = nuid.Next()
	data, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}
	if _, err := c.js.Publish(ctx, subjectFor(conversationID), data); err != nil {
		return "", fmt.Errorf("failed to append to conversation %s: %w", conversationID, err)
	}
	return msg.MessageID, nil
}

func (c *NatsChannel) History(ctx context.Context, conversationID string) ([]Message, error) {
	cons, err := c.js.CreateOrUpdateConsumer(ctx, chatStreamName, jetstream.ConsumerConfig{
		FilterSubject:     subjectFor(conversationID),
		AckPolicy:         jetstream.AckNonePolicy,
		DeliverPolicy:     jetstream.DeliverAllPolicy,
		InactiveThreshold: time.Minute,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create history consumer: %w", err)
	}

	var messages []Message
	for {
		batch, err := cons.FetchNoWait(100)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch history: %w", err)
		}
		count := 0
		for m := range batch.Messages() {
			count++
			var msg Message
			if err := json.Unmarshal(m.Data(), &msg); err != nil {
				continue
			}
			messages = append(messages, msg)
		}
		if err := batch.Error(); err != nil {
			return nil, fmt.Errorf("failed to fetch history: %w", err)
		}
		if count == 0 {
			return messages, nil
		}
	}
}

func (c *NatsChannel) TailFollow(conversationID string, onMessage func(Message), onError func(error)) (directory.Handle, error) {
	ctx := context.Background()
	cons, err := c.js.OrderedConsumer(ctx, chatStreamName, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{subjectFor(conversationID)},
		DeliverPolicy:  jetstream.DeliverAllPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation consumer: %w", err)
	}

	cc, err := cons.Consume(func(m jetstream.Msg) {
		var msg Message
		if err := json.Unmarshal(m.Data(), &msg); err != nil {
			// Malformed entries are skipped, not surfaced.
			m.Ack()
			return
		}
		onMessage(msg)
		m.Ack()
	}, jetstream.ConsumeErrHandler(func(_ jetstream.ConsumeContext, err error) {
		onError(err)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming conversation %s: %w", conversationID, err)
	}

	return directory.NewHandle(cc.Stop), nil
}
