package handlers

import (
	"errors"

	"github.com/alperendogan/devboard/internal/dto"
	"github.com/alperendogan/devboard/internal/middleware"
	"github.com/alperendogan/devboard/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LikeHandler struct {
	likeService *services.LikeService
}

func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// Toggle handles POST /api/projects/:id/like (authenticated).
func (h *LikeHandler) Toggle(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid project ID",
		})
	}

	result, err := h.likeService.Toggle(userID, projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Project not found",
			})
		}
		return internalError(c)
	}

	return c.JSON(result)
}

// GetLikes handles GET /api/projects/:id/likes (public). When a user
// is authenticated the response also says whether they liked it.
func (h *LikeHandler) GetLikes(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid project ID",
		})
	}

	count, err := h.likeService.LikeCount(projectID)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Project not found",
			})
		}
		return internalError(c)
	}

	resp := fiber.Map{"like_count": count}
	if userID, err := middleware.GetUserID(c); err == nil {
		liked, err := h.likeService.HasLiked(userID, projectID)
		if err != nil {
			return internalError(c)
		}
		resp["liked"] = liked
	}

	return c.JSON(resp)
}
