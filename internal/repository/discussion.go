package repository

import (
	"context"
	"errors"

	"sunflowerpost/internal/models"

	"gorm.io/gorm"
)

// DiscussionRepository defines persistence operations for discussions and replies.
type DiscussionRepository interface {
	Create(ctx context.Context, discussion *models.Discussion) error
	GetByID(ctx context.Context, id uint) (*models.Discussion, error)
	Update(ctx context.Context, discussion *models.Discussion) error
	Delete(ctx context.Context, id uint) error
	ListByRoom(ctx context.Context, room string, limit, offset int) ([]models.Discussion, error)
	ListByUser(ctx context.Context, userID uint, includeAnonymous bool) ([]models.Discussion, error)

	CreateReply(ctx context.Context, reply *models.Reply) error
	GetReplyByID(ctx context.Context, id uint) (*models.Reply, error)
	DeleteReply(ctx context.Context, id uint) error
	ListReplies(ctx context.Context, discussionID uint, limit, offset int) ([]models.Reply, error)
}

type discussionRepository struct {
	db *gorm.DB
}

// NewDiscussionRepository creates a new discussion repository
func NewDiscussionRepository(db *gorm.DB) DiscussionRepository {
	return &discussionRepository{db: db}
}

func (r *discussionRepository) Create(ctx context.Context, discussion *models.Discussion) error {
	if err := r.db.WithContext(ctx).Create(discussion).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *discussionRepository) GetByID(ctx context.Context, id uint) (*models.Discussion, error) {
	var discussion models.Discussion
	if err := r.db.WithContext(ctx).Preload("User").First(&discussion, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Discussion", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &discussion, nil
}

func (r *discussionRepository) Update(ctx context.Context, discussion *models.Discussion) error {
	if err := r.db.WithContext(ctx).Save(discussion).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *discussionRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Discussion{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *discussionRepository) ListByRoom(ctx context.Context, room string, limit, offset int) ([]models.Discussion, error) {
	var discussions []models.Discussion
	if err := r.db.WithContext(ctx).
		Where("room = ?", room).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&discussions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return discussions, nil
}

func (r *discussionRepository) ListByUser(ctx context.Context, userID uint, includeAnonymous bool) ([]models.Discussion, error) {
	var discussions []models.Discussion
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeAnonymous {
		q = q.Where("is_anonymous = ?", false)
	}
	if err := q.Order("created_at DESC").Find(&discussions).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return discussions, nil
}

// CreateReply persists the reply and bumps the discussion's replies_count.
// The two writes are independent; the count is a best-effort denormalization.
func (r *discussionRepository) CreateReply(ctx context.Context, reply *models.Reply) error {
	if err := r.db.WithContext(ctx).Create(reply).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Discussion{}).
		Where("id = ?", reply.DiscussionID).
		UpdateColumn("replies_count", gorm.Expr("replies_count + 1")).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *discussionRepository) GetReplyByID(ctx context.Context, id uint) (*models.Reply, error) {
	var reply models.Reply
	if err := r.db.WithContext(ctx).Preload("User").First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Reply", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &reply, nil
}

func (r *discussionRepository) DeleteReply(ctx context.Context, id uint) error {
	var reply models.Reply
	if err := r.db.WithContext(ctx).First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Reply", id)
		}
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Delete(&reply).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Discussion{}).
		Where("id = ? AND replies_count > 0", reply.DiscussionID).
		UpdateColumn("replies_count", gorm.Expr("replies_count - 1")).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *discussionRepository) ListReplies(ctx context.Context, discussionID uint, limit, offset int) ([]models.Reply, error) {
	var replies []models.Reply
	if err := r.db.WithContext(ctx).
		Where("discussion_id = ?", discussionID).
		Preload("User").
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&replies).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return replies, nil
}
