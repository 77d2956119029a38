package repository

import (
	"context"
	"errors"

	"sunflowerpost/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TwoHopEdge is one candidate row from the follows-of-follows traversal,
// in scan order so callers can apply a stable ranking.
type TwoHopEdge struct {
	CandidateID uint
}

// FollowRepository defines the interface for follow graph operations.
type FollowRepository interface {
	Upsert(ctx context.Context, edge *models.FollowEdge) error
	GetEdge(ctx context.Context, followerID, followingID uint) (*models.FollowEdge, error)
	GetByID(ctx context.Context, id uint) (*models.FollowEdge, error)
	Delete(ctx context.Context, followerID, followingID uint) error
	UpdateStatus(ctx context.Context, edgeID uint, status models.FollowStatus) error
	DeleteByID(ctx context.Context, edgeID uint) error
	GetFollowers(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowing(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error)
	GetPendingRequests(ctx context.Context, userID uint) ([]models.FollowEdge, error)
	MutualConnections(ctx context.Context, userA, userB uint) ([]models.User, error)
	TwoHopCandidates(ctx context.Context, userID uint) ([]TwoHopEdge, error)
	ListOthers(ctx context.Context, userID uint, excluded []uint, limit int) ([]models.User, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Upsert creates the edge if absent; a concurrent duplicate is a no-op so
// repeated follows never create a second row for the ordered pair.
func (r *followRepository) Upsert(ctx context.Context, edge *models.FollowEdge) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
			DoNothing: true,
		}).
		Create(edge).Error
	if err != nil {
		if errors.Is(err, models.ErrSelfFollow) {
			return models.NewValidationError("You cannot follow yourself")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) GetEdge(ctx context.Context, followerID, followingID uint) (*models.FollowEdge, error) {
	var edge models.FollowEdge
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No edge exists
		}
		return nil, models.NewInternalError(err)
	}
	return &edge, nil
}

func (r *followRepository) GetByID(ctx context.Context, id uint) (*models.FollowEdge, error) {
	var edge models.FollowEdge
	if err := r.db.WithContext(ctx).Preload("Follower").Preload("Following").First(&edge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Follow request", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &edge, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID uint) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.FollowEdge{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) UpdateStatus(ctx context.Context, edgeID uint, status models.FollowStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.FollowEdge{}).
		Where("id = ?", edgeID).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) DeleteByID(ctx context.Context, edgeID uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.FollowEdge{}, edgeID).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *followRepository) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follow_edges f ON users.id = f.follower_id").
		Where("f.following_id = ? AND f.status = ?", userID, models.FollowStatusApproved).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *followRepository) GetFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follow_edges f ON users.id = f.following_id").
		Where("f.follower_id = ? AND f.status = ?", userID, models.FollowStatusApproved).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// GetFollowingIDs returns ids the user follows, pending edges included,
// so suggestion queries can exclude anyone already requested.
func (r *followRepository) GetFollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.FollowEdge{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *followRepository) GetPendingRequests(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	var edges []models.FollowEdge
	if err := r.db.WithContext(ctx).
		Where("following_id = ? AND status = ?", userID, models.FollowStatusPending).
		Preload("Follower").
		Find(&edges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return edges, nil
}

// MutualConnections returns users both userA and userB follow with
// approved edges.
func (r *followRepository) MutualConnections(ctx context.Context, userA, userB uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follow_edges fa ON fa.following_id = users.id AND fa.follower_id = ? AND fa.status = ?",
			userA, models.FollowStatusApproved).
		Joins("JOIN follow_edges fb ON fb.following_id = users.id AND fb.follower_id = ? AND fb.status = ?",
			userB, models.FollowStatusApproved).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// TwoHopCandidates walks follows-of-follows over approved edges. Rows come
// back in traversal order; ranking and exclusion happen in the service.
func (r *followRepository) TwoHopCandidates(ctx context.Context, userID uint) ([]TwoHopEdge, error) {
	var edges []TwoHopEdge
	if err := r.db.WithContext(ctx).
		Table("follow_edges f1").
		Select("f2.following_id AS candidate_id").
		Joins("JOIN follow_edges f2 ON f2.follower_id = f1.following_id AND f2.status = ?",
			models.FollowStatusApproved).
		Where("f1.follower_id = ? AND f1.status = ? AND f2.following_id != ?",
			userID, models.FollowStatusApproved, userID).
		Order("f1.id, f2.id").
		Scan(&edges).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return edges, nil
}

// ListOthers returns up to limit users other than userID and the excluded
// set; the neighborhood fallback when no two-hop candidates exist.
func (r *followRepository) ListOthers(ctx context.Context, userID uint, excluded []uint, limit int) ([]models.User, error) {
	var users []models.User
	q := r.db.WithContext(ctx).Where("id != ?", userID)
	if len(excluded) > 0 {
		q = q.Where("id NOT IN ?", excluded)
	}
	if err := q.Order("id").Limit(limit).Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
