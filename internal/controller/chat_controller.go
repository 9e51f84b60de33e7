// FILE: internal/controller/chat_controller.go
package controller

import (
	"rbac-chatbot-be/internal/dto"
	"rbac-chatbot-be/internal/pkg/serverutils"
	"rbac-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, authRequired fiber.Handler)
	Chat(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	ClearHistory(ctx *fiber.Ctx) error
	Partitions(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router, authRequired fiber.Handler) {
	r.Post("/chat", authRequired, c.Chat)
	r.Get("/chat/history", authRequired, c.History)
	r.Delete("/chat/history", authRequired, c.ClearHistory)
	r.Get("/partitions", authRequired, c.Partitions)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	identity, ok := serverutils.IdentityFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    401,
			"message": "Invalid credentials",
		})
	}

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "message and partition are required",
		})
	}

	res, err := c.service.Chat(ctx.Context(), identity, &req)
	if err != nil {
		return errorJSON(ctx, err)
	}
	return okJSON(ctx, "OK", res)
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	identity, ok := serverutils.IdentityFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    401,
			"message": "Invalid credentials",
		})
	}

	sessionId := ctx.Query("session_id")
	if sessionId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "session_id is required",
		})
	}

	res, err := c.service.History(ctx.Context(), identity, sessionId)
	if err != nil {
		return errorJSON(ctx, err)
	}
	return okJSON(ctx, "OK", res)
}

func (c *chatController) ClearHistory(ctx *fiber.Ctx) error {
	identity, ok := serverutils.IdentityFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    401,
			"message": "Invalid credentials",
		})
	}

	sessionId := ctx.Query("session_id")
	if sessionId == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "session_id is required",
		})
	}

	if err := c.service.ClearHistory(ctx.Context(), identity, sessionId); err != nil {
		return errorJSON(ctx, err)
	}
	return okJSON(ctx, "Session cleared", nil)
}

func (c *chatController) Partitions(ctx *fiber.Ctx) error {
	identity, ok := serverutils.IdentityFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    401,
			"message": "Invalid credentials",
		})
	}
	return okJSON(ctx, "OK", c.service.AccessiblePartitions(identity))
}
