package server

import (
	"sunflowerpost/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateBook handles POST /api/books
func (s *Server) CreateBook(c *fiber.Ctx) error {
	var req struct {
		Title       string            `json:"title"`
		Author      string            `json:"author"`
		Status      models.BookStatus `json:"status"`
		Review      string            `json:"review"`
		Rating      int               `json:"rating"`
		IsAnonymous bool              `json:"is_anonymous"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.Title == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}
	if req.Status == "" {
		req.Status = models.BookStatusToRead
	}
	if !models.ValidBookStatus(req.Status) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid reading status"))
	}
	if req.Rating < 0 || req.Rating > 5 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Rating must be between 0 and 5"))
	}

	book := &models.Book{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Author:      req.Author,
		Status:      req.Status,
		Review:      req.Review,
		Rating:      req.Rating,
		IsAnonymous: req.IsAnonymous,
	}
	if err := s.bookRepo.Create(c.Context(), book); err != nil {
		return respondAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"book": book})
}

// GetBooks handles GET /api/books
func (s *Server) GetBooks(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	books, err := s.bookRepo.List(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return respondAppError(c, err)
	}

	viewerID := currentUserID(c)
	out := make([]fiber.Map, 0, len(books))
	for i := range books {
		out = append(out, bookJSON(&books[i], viewerID))
	}
	return c.JSON(fiber.Map{"books": out})
}

// GetBook handles GET /api/books/:id
func (s *Server) GetBook(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	book, err := s.bookRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"book": bookJSON(book, currentUserID(c))})
}

// UpdateBook handles PUT /api/books/:id
func (s *Server) UpdateBook(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	book, err := s.bookRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	if book.UserID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Book", id))
	}

	var req struct {
		Title  *string            `json:"title"`
		Author *string            `json:"author"`
		Status *models.BookStatus `json:"status"`
		Review *string            `json:"review"`
		Rating *int               `json:"rating"`
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
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Status != nil {
		if !models.ValidBookStatus(*req.Status) {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid reading status"))
		}
		book.Status = *req.Status
	}
	if req.Review != nil {
		book.Review = *req.Review
	}
	if req.Rating != nil {
		if *req.Rating < 0 || *req.Rating > 5 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Rating must be between 0 and 5"))
		}
		book.Rating = *req.Rating
	}

	if err := s.bookRepo.Update(c.Context(), book); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"book": book})
}

// DeleteBook handles DELETE /api/books/:id
func (s *Server) DeleteBook(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	book, err := s.bookRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondAppError(c, err)
	}
	if book.UserID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("Book", id))
	}

	if err := s.bookRepo.Delete(c.Context(), id); err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Book deleted"})
}
