package controller

import (
	"shopchat-be/internal/dto"
	"shopchat-be/internal/pkg/serverutils"
	"shopchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDetectionController interface {
	RegisterRoutes(r fiber.Router)
	Detect(ctx *fiber.Ctx) error
}

type detectionController struct {
	detectionService service.IDetectionService
}

func NewDetectionController(detectionService service.IDetectionService) IDetectionController {
	return &detectionController{detectionService: detectionService}
}

func (c *detectionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/detect")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Detect)
}

func (c *detectionController) Detect(ctx *fiber.Ctx) error {
	var req dto.DetectRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.detectionService.Detect(ctx.Context(), &req)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{"errorMessage": err.Error()})
	}
	return ctx.JSON(serverutils.SuccessResponse("Success", res))
}
