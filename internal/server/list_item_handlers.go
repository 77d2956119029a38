package server

import (
	"sunflowerpost/internal/models"
	"sunflowerpost/internal/rooms"

	"github.com/gofiber/fiber/v2"
)

// CreateListItem handles POST /api/rooms/:room/list-items
func (s *Server) CreateListItem(c *fiber.Ctx) error {
	room := c.Params("room")
	if !rooms.Known(room) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown room"))
	}

	var req struct {
		Title       string `json:"title"`
		Note        string `json:"note"`
		Position    int    `json:"position"`
		IsAnonymous bool   `json:"is_anonymous"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}

	item := &models.ListItem{
		Room:        room,
		UserID:      currentUserID(c),
		Title:       req.Title,
		Note:        req.Note,
		Position:    req.Position,
		IsAnonymous: req.IsAnonymous,
	}
	if err := s.listItemRepo.Create(c.Context(), item); err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"list_item": item})
}

// GetListItems handles GET /api/rooms/:room/list-items
func (s *Server) GetListItems(c *fiber.Ctx) error {
	room := c.Params("room")
	if !rooms.Known(room) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown room"))
	}

	p := parsePagination(c, 50)
	items, err := s.listItemRepo.ListByRoom(c.Context(), room, p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}

	viewerID := currentUserID(c)
	out := make([]fiber.Map, 0, len(items))
	for i := range items {
		out = append(out, listItemJSON(&items[i], viewerID))
	}
	return c.JSON(fiber.Map{"list_items": out})
}

// UpdateListItem handles PUT /api/list-items/:id
func (s *Server) UpdateListItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	item, err := s.listItemRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	if item.UserID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("List item", id))
	}

	var req struct {
		Title    *string `json:"title"`
		Note     *string `json:"note"`
		Position *int    `json:"position"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title != nil {
		if *req.Title == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Title is required"))
		}
		item.Title = *req.Title
	}
	if req.Note != nil {
		item.Note = *req.Note
	}
	if req.Position != nil {
		item.Position = *req.Position
	}

	if err := s.listItemRepo.Update(c.Context(), item); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"list_item": item})
}

// DeleteListItem handles DELETE /api/list-items/:id
func (s *Server) DeleteListItem(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	item, err := s.listItemRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	if item.UserID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("List item", id))
	}

	if err := s.listItemRepo.Delete(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "List item deleted"})
}
