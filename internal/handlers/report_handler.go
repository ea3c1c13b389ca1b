package handlers

import (
	"errors"
	"time"

	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/dto"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/middleware"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/models"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) CreateLost(c *fiber.Ctx) error {
	return h.create(c, models.ReportKindLost)
}

func (h *ReportHandler) CreateFound(c *fiber.Ctx) error {
	return h.create(c, models.ReportKindFound)
}

func (h *ReportHandler) create(c *fiber.Ctx, kind models.ReportKind) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	report, err := h.reportService.Create(userID, kind, &req)
	if err != nil {
		return badRequest(c, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) Search(c *fiber.Ctx) error {
	query := dto.ReportSearchQuery{
		Plate: c.Query("plate"),
		City:  c.Query("city"),
	}
	if from := c.Query("date_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			query.DateFrom = &t
		}
	}
	if to := c.Query("date_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			query.DateTo = &t
		}
	}

	reports, err := h.reportService.Search(&query)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to search reports"})
	}

	return c.JSON(fiber.Map{"reports": reports, "total": len(reports)})
}

func (h *ReportHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	report, err := h.reportService.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return notFound(c, err.Error())
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch report"})
	}

	return c.JSON(report)
}

func (h *ReportHandler) GetMine(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	reports, err := h.reportService.GetMine(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch reports"})
	}

	return c.JSON(fiber.Map{"reports": reports, "total": len(reports)})
}

func (h *ReportHandler) Close(c *fiber.Ctx) error {
	return h.transition(c, h.reportService.Close)
}

func (h *ReportHandler) Remove(c *fiber.Ctx) error {
	return h.transition(c, h.reportService.Remove)
}

func (h *ReportHandler) transition(c *fiber.Ctx, op func(id, userID uuid.UUID) error) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid report ID")
	}

	if err := op(id, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrReportNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrReportNotActive):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to update report"})
	}

	return c.JSON(fiber.Map{"message": "Report updated"})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: message})
}
