package server

import (
	"sunflowerpost/internal/models"
	"sunflowerpost/internal/rooms"

	"github.com/gofiber/fiber/v2"
)

// CreateDiscussion handles POST /api/discussions
func (s *Server) CreateDiscussion(c *fiber.Ctx) error {
	var req struct {
		Room        string `json:"room"`
		Title       string `json:"title"`
		Body        string `json:"body"`
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
	if !rooms.Known(req.Room) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown room"))
	}

	discussion := &models.Discussion{
		Room:        req.Room,
		UserID:      currentUserID(c),
		Title:       req.Title,
		Body:        req.Body,
		IsAnonymous: req.IsAnonymous,
	}
	if err := s.discussionRepo.Create(c.Context(), discussion); err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"discussion": discussion})
}

// GetDiscussions handles GET /api/discussions?room=book-club
func (s *Server) GetDiscussions(c *fiber.Ctx) error {
	room := c.Query("room")
	if room != "" && !rooms.Known(room) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unknown room"))
	}
	if room == "" {
		room = rooms.DefaultRoom
	}

	p := parsePagination(c, 20)
	discussions, err := s.discussionRepo.ListByRoom(c.Context(), room, p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}

	viewerID := currentUserID(c)
	out := make([]fiber.Map, 0, len(discussions))
	for i := range discussions {
		out = append(out, discussionJSON(&discussions[i], viewerID))
	}
	return c.JSON(fiber.Map{"discussions": out})
}

// GetDiscussion handles GET /api/discussions/:id
func (s *Server) GetDiscussion(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	discussion, err := s.discussionRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"discussion": discussionJSON(discussion, currentUserID(c))})
}

// UpdateDiscussion handles PUT /api/discussions/:id
func (s *Server) UpdateDiscussion(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	discussion, err := s.discussionRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	if discussion.UserID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Discussion", id))
	}

	var req struct {
		Title *string `json:"title"`
		Body  *string `json:"body"`
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
		discussion.Title = *req.Title
	}
	if req.Body != nil {
		discussion.Body = *req.Body
	}

	if err := s.discussionRepo.Update(c.Context(), discussion); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"discussion": discussion})
}

// DeleteDiscussion handles DELETE /api/discussions/:id
func (s *Server) DeleteDiscussion(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	discussion, err := s.discussionRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	if discussion.UserID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Discussion", id))
	}

	if err := s.discussionRepo.Delete(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Discussion deleted"})
}

// CreateReply handles POST /api/discussions/:id/replies
func (s *Server) CreateReply(c *fiber.Ctx) error {
	discussionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Body        string `json:"body"`
		IsAnonymous bool   `json:"is_anonymous"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Body == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Reply body is required"))
	}

	// Existence check so a reply to a deleted thread 404s instead of
	// dangling.
	if _, err := s.discussionRepo.GetByID(c.Context(), discussionID); err != nil {
		return respondAppError(c, err)
	}

	reply := &models.Reply{
		DiscussionID: discussionID,
		UserID:       currentUserID(c),
		Body:         req.Body,
		IsAnonymous:  req.IsAnonymous,
	}
	if err := s.discussionRepo.CreateReply(c.Context(), reply); err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"reply": reply})
}

// GetReplies handles GET /api/discussions/:id/replies
func (s *Server) GetReplies(c *fiber.Ctx) error {
	discussionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 50)
	replies, err := s.discussionRepo.ListReplies(c.Context(), discussionID, p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}

	viewerID := currentUserID(c)
	out := make([]fiber.Map, 0, len(replies))
	for i := range replies {
		out = append(out, replyJSON(&replies[i], viewerID))
	}
	return c.JSON(fiber.Map{"replies": out})
}

// DeleteReply handles DELETE /api/discussions/:id/replies/:replyId
func (s *Server) DeleteReply(c *fiber.Ctx) error {
	replyID, err := s.parseID(c, "replyId")
	if err != nil {
		return nil
	}

	reply, err := s.discussionRepo.GetReplyByID(c.Context(), replyID)
	if err != nil {
		return respondAppError(c, err)
	}
	if reply.UserID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Reply", replyID))
	}

	if err := s.discussionRepo.DeleteReply(c.Context(), replyID); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Reply deleted"})
}
