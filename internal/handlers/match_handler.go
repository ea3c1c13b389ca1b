package handlers

import (
	"errors"

	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/dto"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/middleware"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/models"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// MatchHandler also carries the match-scoped message endpoints, mirroring
// the /matches/:id/messages route shape.
type MatchHandler struct {
	matchService   *services.MatchService
	messageService *services.MessageService
}

func NewMatchHandler(matchService *services.MatchService, messageService *services.MessageService) *MatchHandler {
	return &MatchHandler{matchService: matchService, messageService: messageService}
}

func (h *MatchHandler) GetMine(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	matches, err := h.matchService.GetMine(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch matches"})
	}

	return c.JSON(fiber.Map{"matches": matches, "total": len(matches)})
}

func (h *MatchHandler) GetByID(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	matchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid match ID")
	}

	match, err := h.matchService.GetByID(matchID, userID)
	if err != nil {
		if errors.Is(err, services.ErrMatchNotFound) {
			return notFound(c, err.Error())
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch match"})
	}

	return c.JSON(match)
}

func (h *MatchHandler) SetSafeLocation(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	matchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid match ID")
	}

	var req dto.SetSafeLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.matchService.SetSafeLocation(matchID, req.SafeLocationID, userID); err != nil {
		return h.matchError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Safe location set"})
}

func (h *MatchHandler) Close(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	matchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid match ID")
	}

	var req dto.CloseMatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.matchService.Close(matchID, models.MatchStatus(req.Status), userID); err != nil {
		return h.matchError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Match closed"})
}

func (h *MatchHandler) ListSafeLocations(c *fiber.Ctx) error {
	locations, err := h.matchService.ListSafeLocations()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch safe locations"})
	}

	return c.JSON(fiber.Map{"safe_locations": locations})
}

func (h *MatchHandler) ListMessages(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	matchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid match ID")
	}

	messages, err := h.messageService.List(matchID, userID)
	if err != nil {
		return h.matchError(c, err)
	}

	return c.JSON(fiber.Map{"messages": messages, "total": len(messages)})
}

func (h *MatchHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	matchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid match ID")
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	message, err := h.messageService.Send(matchID, userID, req.Body)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			return badRequest(c, err.Error())
		}
		return h.matchError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

func (h *MatchHandler) matchError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrMatchNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, services.ErrAccessDenied):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, services.ErrMatchClosed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, services.ErrInvalidMatchStatus),
		errors.Is(err, services.ErrSafeLocationInvalid):
		return badRequest(c, err.Error())
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to update match"})
}
