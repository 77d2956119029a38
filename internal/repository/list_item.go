package repository

import (
	"context"
	"errors"

	"sunflowerpost/internal/models"

	"gorm.io/gorm"
)

// ListItemRepository defines persistence operations for per-room list entries.
type ListItemRepository interface {
	Create(ctx context.Context, item *models.ListItem) error
	GetByID(ctx context.Context, id uint) (*models.ListItem, error)
	Update(ctx context.Context, item *models.ListItem) error
	Delete(ctx context.Context, id uint) error
	ListByRoom(ctx context.Context, room string, limit, offset int) ([]models.ListItem, error)
	ListByUser(ctx context.Context, userID uint, includeAnonymous bool) ([]models.ListItem, error)
}

type listItemRepository struct {
	db *gorm.DB
}

// NewListItemRepository creates a new list item repository
func NewListItemRepository(db *gorm.DB) ListItemRepository {
	return &listItemRepository{db: db}
}

func (r *listItemRepository) Create(ctx context.Context, item *models.ListItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *listItemRepository) GetByID(ctx context.Context, id uint) (*models.ListItem, error) {
	var item models.ListItem
	if err := r.db.WithContext(ctx).Preload("User").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("List item", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &item, nil
}

func (r *listItemRepository) Update(ctx context.Context, item *models.ListItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *listItemRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.ListItem{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *listItemRepository) ListByRoom(ctx context.Context, room string, limit, offset int) ([]models.ListItem, error) {
	var items []models.ListItem
	if err := r.db.WithContext(ctx).
		Where("room = ?", room).
		Preload("User").
		Order("position ASC, created_at ASC").
		Limit(limit).Offset(offset).
		Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *listItemRepository) ListByUser(ctx context.Context, userID uint, includeAnonymous bool) ([]models.ListItem, error) {
	var items []models.ListItem
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeAnonymous {
		q = q.Where("is_anonymous = ?", false)
	}
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}
