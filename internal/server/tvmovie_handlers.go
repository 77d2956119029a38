package server

import (
	"sunflowerpost/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateTVMovie handles POST /api/tv-movies
func (s *Server) CreateTVMovie(c *fiber.Ctx) error {
	var req struct {
		Title       string             `json:"title"`
		Kind        string             `json:"kind"`
		Status      models.WatchStatus `json:"status"`
		Review      string             `json:"review"`
		IsAnonymous bool               `json:"is_anonymous"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}
	if req.Kind == "" {
		req.Kind = "movie"
	}
	if req.Kind != "tv" && req.Kind != "movie" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Kind must be 'tv' or 'movie'"))
	}
	if req.Status == "" {
		req.Status = models.WatchStatusWatchlist
	}
	if !models.ValidWatchStatus(req.Status) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid watch status"))
	}

	entry := &models.TVMovie{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Kind:        req.Kind,
		Status:      req.Status,
		Review:      req.Review,
		IsAnonymous: req.IsAnonymous,
	}
	if err := s.tvMovieRepo.Create(c.Context(), entry); err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"tv_movie": entry})
}

// GetTVMovies handles GET /api/tv-movies
func (s *Server) GetTVMovies(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	entries, err := s.tvMovieRepo.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}

	viewerID := currentUserID(c)
	out := make([]fiber.Map, 0, len(entries))
	for i := range entries {
		out = append(out, tvMovieJSON(&entries[i], viewerID))
	}
	return c.JSON(fiber.Map{"tv_movies": out})
}

// GetTVMovie handles GET /api/tv-movies/:id
func (s *Server) GetTVMovie(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	entry, err := s.tvMovieRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"tv_movie": tvMovieJSON(entry, currentUserID(c))})
}

// UpdateTVMovie handles PUT /api/tv-movies/:id
func (s *Server) UpdateTVMovie(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	entry, err := s.tvMovieRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	if entry.UserID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Entry", id))
	}

	var req struct {
		Title  *string             `json:"title"`
		Status *models.WatchStatus `json:"status"`
		Review *string             `json:"review"`
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
		entry.Title = *req.Title
	}
	if req.Status != nil {
		if !models.ValidWatchStatus(*req.Status) {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid watch status"))
		}
		entry.Status = *req.Status
	}
	if req.Review != nil {
		entry.Review = *req.Review
	}

	if err := s.tvMovieRepo.Update(c.Context(), entry); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"tv_movie": entry})
}

// DeleteTVMovie handles DELETE /api/tv-movies/:id
func (s *Server) DeleteTVMovie(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	entry, err := s.tvMovieRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	if entry.UserID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Entry", id))
	}

	if err := s.tvMovieRepo.Delete(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Entry deleted"})
}
