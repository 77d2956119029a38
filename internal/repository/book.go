package repository

import (
	"context"
	"errors"

	"sunflowerpost/internal/models"

	"gorm.io/gorm"
)

// BookRepository defines persistence operations for book-club entries.
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id uint) (*models.Book, error)
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.Book, error)
	ListByUser(ctx context.Context, userID uint, includeAnonymous bool) ([]models.Book, error)
}

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository returns a new BookRepository implementation.
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *bookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).Preload("User").First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Book", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &book, nil
}

func (r *bookRepository) Update(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Save(book).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Book{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *bookRepository) List(ctx context.Context, limit, offset int) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&books).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return books, nil
}

// ListByUser returns a user's entries, dropping anonymous ones unless the
// viewer is the owner.
func (r *bookRepository) ListByUser(ctx context.Context, userID uint, includeAnonymous bool) ([]models.Book, error) {
	var books []models.Book
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeAnonymous {
		q = q.Where("is_anonymous = ?", false)
	}
	if err := q.Order("created_at DESC").Find(&books).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return books, nil
}
