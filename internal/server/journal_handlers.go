package server

import (
	"sunflowerpost/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateJournalEntry handles POST /api/journal
func (s *Server) CreateJournalEntry(c *fiber.Ctx) error {
	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
		Mood  string `json:"mood"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entry := &models.JournalEntry{
		UserID: currentUserID(c),
		Title:  req.Title,
		Body:   req.Body,
		Mood:   req.Mood,
	}
	if err := s.journalService.Create(c.Context(), entry); err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"entry": entry})
}

// GetJournalEntries handles GET /api/journal
func (s *Server) GetJournalEntries(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	entries, err := s.journalService.List(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"entries": entries})
}

// GetJournalEntry handles GET /api/journal/:id
func (s *Server) GetJournalEntry(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	entry, err := s.journalService.Get(c.Context(), id, currentUserID(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"entry": entry})
}

// UpdateJournalEntry handles PUT /api/journal/:id
func (s *Server) UpdateJournalEntry(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	userID := currentUserID(c)
	entry, err := s.journalService.Get(c.Context(), id, userID)
	if err != nil {
		return respondAppError(c, err)
	}

	var req struct {
		Title *string `json:"title"`
		Body  *string `json:"body"`
		Mood  *string `json:"mood"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Title != nil {
		entry.Title = *req.Title
	}
	if req.Body != nil {
		if *req.Body == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Journal body is required"))
		}
		entry.Body = *req.Body
	}
	if req.Mood != nil {
		entry.Mood = *req.Mood
	}

	if err := s.journalService.Update(c.Context(), entry); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"entry": entry})
}

// DeleteJournalEntry handles DELETE /api/journal/:id
func (s *Server) DeleteJournalEntry(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.journalService.Delete(c.Context(), id, currentUserID(c)); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Entry deleted"})
}

// JournalReflect handles POST /api/journal-ai
func (s *Server) JournalReflect(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if !s.featureFlags.EnabledOrDefault("journal_assistant", userID, true) {
		return models.RespondWithError(c, fiber.StatusServiceUnavailable,
			models.NewValidationError("The journaling assistant is currently unavailable"))
	}

	var req struct {
		Text    string `json:"text"`
		EntryID uint   `json:"entry_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reflection, err := s.journalService.Reflect(c.Context(), userID, req.EntryID, req.Text)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"reflection": reflection})
}
