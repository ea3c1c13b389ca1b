package handlers

import (
	"errors"

	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/dto"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/middleware"
	"github.com/dimitrigaulia/AcheiMinhaPlaca/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ClaimHandler struct {
	claimService *services.ClaimService
}

func NewClaimHandler(claimService *services.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

// Create runs one verification attempt and, on success, returns the
// newly created match.
func (h *ClaimHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateClaimRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	match, err := h.claimService.CreateClaim(req.LostReportID, req.FoundReportID, req.Secret, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidLostReport),
			errors.Is(err, services.ErrInvalidFoundReport):
			return badRequest(c, err.Error())
		case errors.Is(err, services.ErrNoSecretConfigured),
			errors.Is(err, services.ErrAlreadyVerified),
			errors.Is(err, services.ErrClaimConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, services.ErrTooManyAttempts):
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, services.ErrIncorrectSecret):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to process claim"})
	}

	return c.Status(fiber.StatusCreated).JSON(match)
}
