package server

import (
	"sunflowerpost/internal/models"

	"github.com/gofiber/fiber/v2"
)

var savedItemTypes = map[string]bool{
	"book":       true,
	"tv_movie":   true,
	"discussion": true,
	"list_item":  true,
}

// SaveItem handles PUT /api/saved. Saving the same item twice is a no-op.
func (s *Server) SaveItem(c *fiber.Ctx) error {
	var req struct {
		ItemType string `json:"item_type"`
		ItemID   uint   `json:"item_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if !savedItemTypes[req.ItemType] || req.ItemID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A valid item type and item id are required"))
	}

	item := &models.SavedItem{
		UserID:   currentUserID(c),
		ItemType: req.ItemType,
		ItemID:   req.ItemID,
	}
	if err := s.savedRepo.Save(c.Context(), item); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"saved": item})
}

// UnsaveItem handles DELETE /api/saved
func (s *Server) UnsaveItem(c *fiber.Ctx) error {
	var req struct {
		ItemType string `json:"item_type"`
		ItemID   uint   `json:"item_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.savedRepo.Unsave(c.Context(), currentUserID(c), req.ItemType, req.ItemID); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Removed from saved items"})
}

// GetSavedItems handles GET /api/saved
func (s *Server) GetSavedItems(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	items, err := s.savedRepo.List(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"saved": items})
}
