package repository

import (
	"context"

	"sunflowerpost/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionRepository defines the interface for reaction mark operations.
type ReactionRepository interface {
	Set(ctx context.Context, mark *models.ReactionMark) error
	GetForTarget(ctx context.Context, room string, targetID, userID uint) ([]models.ReactionMark, error)
	GetUserMarks(ctx context.Context, userID uint) ([]models.ReactionMark, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Set upserts the mark for its (room, target, user, kind) tuple. Setting
// the same active value twice leaves the row unchanged, so toggles are
// idempotent.
func (r *reactionRepository) Set(ctx context.Context, mark *models.ReactionMark) error {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "room"}, {Name: "target_id"}, {Name: "user_id"}, {Name: "kind"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"active": mark.Active,
			}),
		}).
		Create(mark).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetForTarget returns only the requesting user's marks for a target.
// Reactions are private per user; no aggregate is ever exposed.
func (r *reactionRepository) GetForTarget(ctx context.Context, room string, targetID, userID uint) ([]models.ReactionMark, error) {
	var marks []models.ReactionMark
	if err := r.db.WithContext(ctx).
		Where("room = ? AND target_id = ? AND user_id = ? AND active = ?", room, targetID, userID, true).
		Find(&marks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return marks, nil
}

func (r *reactionRepository) GetUserMarks(ctx context.Context, userID uint) ([]models.ReactionMark, error) {
	var marks []models.ReactionMark
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("updated_at DESC").
		Find(&marks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return marks, nil
}
