package handler

import (
	"encoding/json"

	"shopchat-be/internal/dto"
	"shopchat-be/internal/pkg/logger"
	"shopchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type ChatStreamHandler struct {
	chatService service.IChatService
	logger      logger.ILogger
}

func NewChatStreamHandler(chatService service.IChatService, log logger.ILogger) *ChatStreamHandler {
	return &ChatStreamHandler{
		chatService: chatService,
		logger:      log,
	}
}

// ServeWs streams a conversation to one client: the full history first, then
// every live append in store order. The subscription is cancelled as soon as
// the socket goes away, so a reconnecting client never double-subscribes.
func (h *ChatStreamHandler) ServeWs(c *fiber.Ctx) error {
	userID, err := wsUserID(c)
	if err != nil {
		return err
	}
	peerID := c.Params("peerId")

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		// Messages are funneled through one channel so only this goroutine
		// writes to the socket.
		out := make(chan []byte, 256)
		done := make(chan struct{})

		handle, err := h.chatService.TailFollow(userID, peerID,
			func(msg dto.ChatMessageResponse) {
				data, err := json.Marshal(map[string]interface{}{
					"type": "message",
					"data": msg,
				})
				if err != nil {
					return
				}
				select {
				case out <- data:
				case <-done:
				}
			},
			func(err error) {
				data, _ := json.Marshal(map[string]interface{}{
					"type":  "error",
					"error": err.Error(),
				})
				select {
				case out <- data:
				case <-done:
				}
			},
		)
		if err != nil {
			h.logger.Warn("ChatStreamHandler", "Failed to open conversation stream", map[string]interface{}{
				"user_id": userID, "peer_id": peerID, "error": err.Error(),
			})
			conn.WriteJSON(fiber.Map{"type": "error", "error": err.Error()})
			conn.Close()
			return
		}
		defer handle.Cancel()

		go func() {
			for {
				select {
				case data := <-out:
					if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		// Block on reads; a read error means the client is gone.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		close(done)
	})(c)
}
