package controller

import (
	"shopchat-be/internal/dto"
	"shopchat-be/internal/pkg/serverutils"
	"shopchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	ResetConversation(ctx *fiber.Ctx) error
}

type chatbotController struct {
	chatbotService service.IChatbotService
}

func NewChatbotController(chatbotService service.IChatbotService) IChatbotController {
	return &chatbotController{chatbotService: chatbotService}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chatbot")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/message", c.SendMessage)
	h.Delete("/conversation", c.ResetConversation)
}

func (c *chatbotController) SendMessage(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.ChatbotMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.chatbotService.SendMessage(ctx.Context(), userID, &req)
	if err != nil {
		// Assistant failures surface as a message, not a bare 500.
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"errorMessage": err.Error()})
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}

func (c *chatbotController) ResetConversation(ctx *fiber.Ctx) error {
	userID, err := currentUserID(ctx)
	if err != nil {
		return err
	}

	c.chatbotService.ResetConversation(userID)
	return ctx.JSON(serverutils.SuccessResponse("Conversation reset", nil))
}
