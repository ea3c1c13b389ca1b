package handlers

import (
	"errors"

	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/dto"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/middleware"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// FlagReport is open to any authenticated user; review is admin-only.
func (h *AdminHandler) FlagReport(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	var req dto.FlagReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	flag, err := h.adminService.FlagReport(reportID, userID, req.Reason)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return notFound(c, err.Error())
		}
		return badRequest(c, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(flag)
}

func (h *AdminHandler) ListFlags(c *fiber.Ctx) error {
	flags, err := h.adminService.ListFlags()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch flags"})
	}

	return c.JSON(fiber.Map{"flags": flags, "total": len(flags)})
}

func (h *AdminHandler) RemoveReport(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	if err := h.adminService.RemoveReport(reportID); err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return notFound(c, err.Error())
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to remove report"})
	}

	return c.JSON(fiber.Map{"message": "Report removed"})
}
