// FILE: internal/controller/auth_controller.go
package controller

import (
	"fmt"

	"rbac-chatbot-be/internal/dto"
	"rbac-chatbot-be/internal/pkg/serverutils"
	"rbac-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, authRequired fiber.Handler)
	Login(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router, authRequired fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/login", c.Login)
	h.Get("/me", authRequired, c.Me)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := validate.Struct(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    400,
			"message": "username and password are required",
		})
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return errorJSON(ctx, err)
	}
	return okJSON(ctx, "Login successful", res)
}

// Me echoes who the requester is, mostly useful for UI smoke checks.
func (c *authController) Me(ctx *fiber.Ctx) error {
	identity, ok := serverutils.IdentityFromCtx(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"code":    401,
			"message": "Invalid credentials",
		})
	}
	return okJSON(ctx, "OK", dto.MeResponse{
		Message: fmt.Sprintf("Hello %s! Your role is %s.", identity.Username, identity.Role),
		Role:    string(identity.Role),
	})
}
