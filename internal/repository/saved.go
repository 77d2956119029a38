package repository

import (
	"context"

	"sunflowerpost/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SavedRepository defines the interface for bookmark operations.
type SavedRepository interface {
	Save(ctx context.Context, item *models.SavedItem) error
	Unsave(ctx context.Context, userID uint, itemType string, itemID uint) error
	List(ctx context.Context, userID uint, limit, offset int) ([]models.SavedItem, error)
	IsSaved(ctx context.Context, userID uint, itemType string, itemID uint) (bool, error)
}

type savedRepository struct {
	db *gorm.DB
}

// NewSavedRepository creates a new saved item repository
func NewSavedRepository(db *gorm.DB) SavedRepository {
	return &savedRepository{db: db}
}

// Save is an upsert; saving an already-saved item is a no-op.
func (r *savedRepository) Save(ctx context.Context, item *models.SavedItem) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "item_type"}, {Name: "item_id"}},
			DoNothing: true,
		}).
		Create(item).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *savedRepository) Unsave(ctx context.Context, userID uint, itemType string, itemID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND item_type = ? AND item_id = ?", userID, itemType, itemID).
		Delete(&models.SavedItem{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *savedRepository) List(ctx context.Context, userID uint, limit, offset int) ([]models.SavedItem, error) {
	var items []models.SavedItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return items, nil
}

func (r *savedRepository) IsSaved(ctx context.Context, userID uint, itemType string, itemID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.SavedItem{}).
		Where("user_id = ? AND item_type = ? AND item_id = ?", userID, itemType, itemID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}
