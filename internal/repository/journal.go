package repository

import (
	"context"
	"errors"

	"sunflowerpost/internal/models"

	"gorm.io/gorm"
)

// JournalRepository defines persistence operations for journal entries.
// Entries are private; every query is scoped to the owning user.
type JournalRepository interface {
	Create(ctx context.Context, entry *models.JournalEntry) error
	GetByID(ctx context.Context, id, userID uint) (*models.JournalEntry, error)
	Update(ctx context.Context, entry *models.JournalEntry) error
	Delete(ctx context.Context, id, userID uint) error
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.JournalEntry, error)
}

type journalRepository struct {
	db *gorm.DB
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(db *gorm.DB) JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) Create(ctx context.Context, entry *models.JournalEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *journalRepository) GetByID(ctx context.Context, id, userID uint) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Journal entry", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &entry, nil
}

func (r *journalRepository) Update(ctx context.Context, entry *models.JournalEntry) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *journalRepository) Delete(ctx context.Context, id, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.JournalEntry{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *journalRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}
