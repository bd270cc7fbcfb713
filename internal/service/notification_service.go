package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopchat-be/internal/dto"
	"shopchat-be/internal/model"
	"shopchat-be/internal/pkg/logger"
	"shopchat-be/internal/repository/unitofwork"
	"shopchat-be/pkg/events"
	pktNats "shopchat-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PushDelivery defines how real-time updates reach connected clients.
// Typically implemented by the WebSocket Hub.
type PushDelivery interface {
	Send(userID string, eventType string, data interface{})
	Broadcast(eventType string, data interface{})
}

type INotificationService interface {
	Start()
	List(ctx context.Context, userID uuid.UUID, limit int) ([]dto.NotificationResponse, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
}

type notificationService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	delivery   PushDelivery
	logger     logger.ILogger
}

func NewNotificationService(
	uowFactory unitofwork.RepositoryFactory,
	sub *pktNats.Subscriber,
	delivery PushDelivery,
	log logger.ILogger,
) INotificationService {
	return &notificationService{
		uowFactory: uowFactory,
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus with a durable consumer so
// notifications survive restarts.
func (s *notificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *notificationService) handleEvent(ctx context.Context, event events.Event) error {
	switch event.EventType() {
	case events.TypeMessageSent:
		return s.handleMessageSent(ctx, event)
	default:
		// Other event types carry no inbox entry.
		return nil
	}
}

func (s *notificationService) handleMessageSent(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	receiverStr, _ := payload["receiver_id"].(string)
	senderStr, _ := payload["sender_id"].(string)
	body, _ := payload["message"].(string)

	receiverID, err := uuid.Parse(receiverStr)
	if err != nil {
		s.logger.Warn("NotificationService", "MESSAGE_SENT event without a parsable receiver", map[string]interface{}{"receiver_id": receiverStr})
		return nil
	}

	metaJSON, _ := json.Marshal(payload)
	notif := model.Notification{
		ID:        uuid.New(),
		UserID:    receiverID,
		TypeCode:  events.TypeMessageSent,
		Title:     "New message",
		Message:   fmt.Sprintf("New message from %s: %s", senderStr, body),
		Metadata:  datatypes.JSON(metaJSON),
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NotificationRepository().Create(ctx, &notif); err != nil {
		s.logger.Error("NotificationService", "Error saving notification", map[string]interface{}{"error": err, "user_id": receiverID})
		return err // NATS will retry
	}

	if s.delivery != nil {
		s.delivery.Send(receiverID.String(), "notification", notif)
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, limit int) ([]dto.NotificationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	notifications, err := uow.NotificationRepository().ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, dto.NotificationResponse{
			Id:        n.ID,
			TypeCode:  n.TypeCode,
			Title:     n.Title,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().CountUnread(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.NotificationRepository().MarkRead(ctx, userID, notificationID)
}
