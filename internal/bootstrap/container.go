package bootstrap

import (
	"context"
	"log"
	"time"

	"shopchat-be/internal/config"
	"shopchat-be/internal/controller"
	"shopchat-be/internal/handler"
	"shopchat-be/internal/pkg/logger"
	"shopchat-be/internal/pkg/mailer"
	"shopchat-be/internal/repository/memory"
	"shopchat-be/internal/repository/unitofwork"
	"shopchat-be/internal/service"
	"shopchat-be/internal/websocket"
	"shopchat-be/pkg/chat"
	"shopchat-be/pkg/chatbot"
	"shopchat-be/pkg/directory"
	"shopchat-be/pkg/vision"

	pktNats "shopchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	UserController      controller.IUserController
	ChatController      controller.IChatController
	ChatbotController   controller.IChatbotController
	DetectionController controller.IDetectionController
	ProductController   controller.IProductController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	ChatStreamHandler   *handler.ChatStreamHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS: one connection for the message channel, pub/sub wrappers for
	// the event bus.
	natsConn, err := nats.Connect(cfg.App.NatsURL,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS: %v", err)
	}

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// Shared directory tree (users + conversation summaries) lives in Redis.
	var store directory.Store = directory.NewRedisStore(rdb)

	// Per-conversation message logs live in a JetStream stream.
	var channel chat.Channel
	if natsConn != nil {
		channel, err = chat.NewNatsChannel(natsConn)
		if err != nil {
			log.Panicf("Unable to initialize message channel: %v", err)
		}
	} else {
		log.Printf("[WARN] NATS unavailable, chat messages are held in memory only")
		channel = chat.NewMemoryChannel()
	}

	summaryIndex := chat.NewSummaryIndex(store)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	conversationRepo := memory.NewConversationRepository()

	publisherService := service.NewPublisherService(cfg.Chat.MessageSentTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Chat.MessageSentTopic,
		summaryIndex,
		wsHub,
	)

	rosterService := service.NewRosterService(store, cfg.Chat.FallbackUsers, sysLogger)
	authService := service.NewAuthService(uowFactory, emailService, natsPub, rosterService)
	userService := service.NewUserService(uowFactory)
	chatService := service.NewChatService(channel, summaryIndex, publisherService, natsPub, sysLogger)
	chatbotService := service.NewChatbotService(
		chatbot.NewGeminiClient(cfg.Keys.GoogleGemini),
		conversationRepo,
		sysLogger,
	)
	detectionService := service.NewDetectionService(
		vision.NewHuggingFaceDetector(cfg.Keys.HuggingFace),
		sysLogger,
	)
	productService := service.NewProductService()

	// 3.5 Notification System
	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)
	chatStreamHandler := handler.NewChatStreamHandler(chatService, sysLogger)

	// 4. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService),
		UserController:      controller.NewUserController(rosterService, userService),
		ChatController:      controller.NewChatController(chatService),
		ChatbotController:   controller.NewChatbotController(chatbotService),
		DetectionController: controller.NewDetectionController(detectionService),
		ProductController:   controller.NewProductController(productService),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		ChatStreamHandler:   chatStreamHandler,
		WebSocketHub:        wsHub,
	}
}
