package repository

import (
	"context"
	"errors"

	"sunflowerpost/internal/models"

	"gorm.io/gorm"
)

// TVMovieRepository defines persistence operations for screening-room entries.
type TVMovieRepository interface {
	Create(ctx context.Context, entry *models.TVMovie) error
	GetByID(ctx context.Context, id uint) (*models.TVMovie, error)
	Update(ctx context.Context, entry *models.TVMovie) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, limit, offset int) ([]models.TVMovie, error)
	ListByUser(ctx context.Context, userID uint, includeAnonymous bool) ([]models.TVMovie, error)
}

type tvMovieRepository struct {
	db *gorm.DB
}

// NewTVMovieRepository returns a new TVMovieRepository implementation.
func NewTVMovieRepository(db *gorm.DB) TVMovieRepository {
	return &tvMovieRepository{db: db}
}

func (r *tvMovieRepository) Create(ctx context.Context, entry *models.TVMovie) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tvMovieRepository) GetByID(ctx context.Context, id uint) (*models.TVMovie, error) {
	var entry models.TVMovie
	if err := r.db.WithContext(ctx).Preload("User").First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("TV/movie entry", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &entry, nil
}

func (r *tvMovieRepository) Update(ctx context.Context, entry *models.TVMovie) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tvMovieRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.TVMovie{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tvMovieRepository) List(ctx context.Context, limit, offset int) ([]models.TVMovie, error) {
	var entries []models.TVMovie
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

func (r *tvMovieRepository) ListByUser(ctx context.Context, userID uint, includeAnonymous bool) ([]models.TVMovie, error) {
	var entries []models.TVMovie
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeAnonymous {
		q = q.Where("is_anonymous = ?", false)
	}
	if err := q.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}
