package controller

import (
	"errors"

	"faq-assist-be/internal/dto"
	"faq-assist-be/internal/pkg/serverutils"
	"faq-assist-be/internal/repository/implementation"
	"faq-assist-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router, adminKey string)
	ListFaq(ctx *fiber.Ctx) error
	CreateFaq(ctx *fiber.Ctx) error
	UpdateFaq(ctx *fiber.Ctx) error
	DeleteFaq(ctx *fiber.Ctx) error
	GetConfig(ctx *fiber.Ctx) error
	UpdateConfig(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
}

func NewAdminController(adminService service.IAdminService) IAdminController {
	return &adminController{
		adminService: adminService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router, adminKey string) {
	h := r.Group("/admin")
	h.Use(serverutils.AdminKeyMiddleware(adminKey))
	h.Get("/faq", c.ListFaq)
	h.Post("/faq", c.CreateFaq)
	h.Put("/faq/:id", c.UpdateFaq)
	h.Delete("/faq/:id", c.DeleteFaq)
	h.Get("/config", c.GetConfig)
	h.Put("/config", c.UpdateConfig)
	h.Get("/logs", c.GetLogs)
}

func (c *adminController) ListFaq(ctx *fiber.Ctx) error {
	faqs, err := c.adminService.ListFaq()
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list faq", faqs))
}

func (c *adminController) CreateFaq(ctx *fiber.Ctx) error {
	var req dto.CreateFaqRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	created, err := c.adminService.CreateFaq(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create faq", created))
}

func (c *adminController) UpdateFaq(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid faq id")
	}

	var req dto.UpdateFaqRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	updated, err := c.adminService.UpdateFaq(ctx.Context(), int64(id), &req)
	if err != nil {
		if errors.Is(err, implementation.ErrFaqNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "faq not found")
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update faq", updated))
}

func (c *adminController) DeleteFaq(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid faq id")
	}

	if err := c.adminService.DeleteFaq(ctx.Context(), int64(id)); err != nil {
		if errors.Is(err, implementation.ErrFaqNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "faq not found")
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete faq", nil))
}

func (c *adminController) GetConfig(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Config", c.adminService.GetConfig()))
}

func (c *adminController) UpdateConfig(ctx *fiber.Ctx) error {
	var req dto.UpdateConfigRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	updated := c.adminService.UpdateConfig(ctx.Context(), &req)
	return ctx.JSON(serverutils.SuccessResponse("Config updated", updated))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	entries, err := c.adminService.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Logs", entries))
}
