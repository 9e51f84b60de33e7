// FILE: internal/controller/admin_controller.go
package controller

import (
	"rbac-chatbot-be/internal/config"
	"rbac-chatbot-be/internal/dto"
	"rbac-chatbot-be/internal/pkg/serverutils"
	"rbac-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router, authRequired fiber.Handler)
	QueueIngest(ctx *fiber.Ctx) error
	ListIndexes(ctx *fiber.Ctx) error
}

type adminController struct {
	service   service.IAdminService
	accessCfg *config.AccessConfig
}

func NewAdminController(service service.IAdminService, accessCfg *config.AccessConfig) IAdminController {
	return &adminController{service: service, accessCfg: accessCfg}
}

func (c *adminController) RegisterRoutes(r fiber.Router, authRequired fiber.Handler) {
	h := r.Group("/admin", authRequired, c.requireAdmin)
	h.Post("/ingest", c.QueueIngest)
	h.Get("/indexes", c.ListIndexes)
}

// requireAdmin gates the operator surface on the access file's admin list.
func (c *adminController) requireAdmin(ctx *fiber.Ctx) error {
	identity, ok := serverutils.IdentityFromCtx(ctx)
	if !ok || !c.accessCfg.IsAdmin(identity.Username) {
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"code":    403,
			"message": "Not authorized: admin access required.",
		})
	}
	return ctx.Next()
}

func (c *adminController) QueueIngest(ctx *fiber.Ctx) error {
	var req dto.IngestRequest
	if err := ctx.BodyParser(&req); err != nil && len(ctx.Body()) > 0 {
		return err
	}

	if err := c.service.QueueIngest(ctx.Context(), &req); err != nil {
		return errorJSON(ctx, err)
	}
	return ctx.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"success": true,
		"code":    202,
		"message": "Ingestion queued",
		"data":    nil,
	})
}

func (c *adminController) ListIndexes(ctx *fiber.Ctx) error {
	indexes, err := c.service.ListIndexes(ctx.Context())
	if err != nil {
		return errorJSON(ctx, err)
	}
	return okJSON(ctx, "OK", indexes)
}
