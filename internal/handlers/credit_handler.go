package handlers

import (
	"github.com/alperendogan/devboard/internal/dto"
	"github.com/alperendogan/devboard/internal/middleware"
	"github.com/alperendogan/devboard/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CreditHandler struct {
	creditService *services.CreditService
}

func NewCreditHandler(creditService *services.CreditService) *CreditHandler {
	return &CreditHandler{creditService: creditService}
}

// GetCredits handles GET /api/credits?view=balance|history|stats
func (h *CreditHandler) GetCredits(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	switch c.Query("view", "balance") {
	case "balance":
		balance, err := h.creditService.Balance(userID)
		if err != nil {
			return internalError(c)
		}
		return c.JSON(dto.BalanceResponse{Balance: balance})

	case "history":
		limit := c.QueryInt("limit", 20)
		offset := c.QueryInt("offset", 0)
		txns, err := h.creditService.History(userID, limit, offset)
		if err != nil {
			return internalError(c)
		}
		return c.JSON(fiber.Map{"data": txns, "limit": limit, "offset": offset})

	case "stats":
		stats, err := h.creditService.Stats(userID)
		if err != nil {
			return internalError(c)
		}
		return c.JSON(stats)

	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "view must be balance, history or stats",
		})
	}
}

// RecordCredit handles POST /api/credits.
func (h *CreditHandler) RecordCredit(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.RecordCreditRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: validationMessage(err),
		})
	}

	txn, err := h.creditService.Record(userID, req.Amount, req.Reason, req.Metadata)
	if err != nil {
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(txn)
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
