package server

import (
	"sunflowerpost/internal/models"
	"sunflowerpost/internal/observability"
	"sunflowerpost/internal/rooms"

	"github.com/gofiber/fiber/v2"
)

// ToggleReaction handles POST /api/rooms/:room/:id/reactions. The write is an
// upsert, so repeating a toggle with the same arguments is idempotent.
func (s *Server) ToggleReaction(c *fiber.Ctx) error {
	room := c.Params("room")
	if !rooms.Known(room) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown room"))
	}

	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Kind   string `json:"kind"`
		Active *bool  `json:"active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if !rooms.ValidKind(room, req.Kind) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown reaction kind for this room"))
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	mark := &models.ReactionMark{
		Room:     room,
		TargetID: targetID,
		UserID:   currentUserID(c),
		Kind:     req.Kind,
		Active:   active,
	}
	if err := s.reactionRepo.Set(c.Context(), mark); err != nil {
		return respondAppError(c, err)
	}

	observability.ReactionToggles.WithLabelValues(room, req.Kind).Inc()
	return c.JSON(fiber.Map{"reaction": mark})
}

// GetReactions handles GET /api/rooms/:room/:id/reactions. Marks are private,
// so only the caller's own active marks come back; there is no aggregate.
func (s *Server) GetReactions(c *fiber.Ctx) error {
	room := c.Params("room")
	if !rooms.Known(room) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown room"))
	}

	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	marks, err := s.reactionRepo.GetForTarget(c.Context(), room, targetID, currentUserID(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"reactions": marks})
}

// GetReactionKinds handles GET /api/rooms/:room/reaction-kinds
func (s *Server) GetReactionKinds(c *fiber.Ctx) error {
	room := c.Params("room")
	if !rooms.Known(room) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown room"))
	}
	return c.JSON(fiber.Map{
		"room":  room,
		"kinds": rooms.ReactionsFor(room),
	})
}

// GetMyReactions handles GET /api/reactions/me
func (s *Server) GetMyReactions(c *fiber.Ctx) error {
	marks, err := s.reactionRepo.GetUserMarks(c.Context(), currentUserID(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"reactions": marks})
}
