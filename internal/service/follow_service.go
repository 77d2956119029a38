// Package service contains domain logic between handlers and repositories.
package service

import (
	"context"
	"sort"

	"sunflowerpost/internal/cache"
	"sunflowerpost/internal/models"
	"sunflowerpost/internal/observability"
	"sunflowerpost/internal/repository"
)

// FollowService implements follow-graph operations and queries.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService creates a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{followRepo: followRepo, userRepo: userRepo}
}

// Follow creates (or re-asserts) the edge follower -> target. The edge is
// approved immediately unless the target requires follower approval, in
// which case it starts pending. Repeated calls never duplicate the edge.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID uint) (*models.FollowEdge, error) {
	if followerID == targetID {
		return nil, models.NewValidationError("You cannot follow yourself")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	status := models.FollowStatusApproved
	if target.RequireFollowApproval {
		status = models.FollowStatusPending
	}

	edge := &models.FollowEdge{
		FollowerID:  followerID,
		FollowingID: targetID,
		Status:      status,
	}
	if err := s.followRepo.Upsert(ctx, edge); err != nil {
		return nil, err
	}

	// The upsert is a no-op on conflict; re-read so callers always get the
	// persisted edge, first-write status included.
	edge, err = s.followRepo.GetEdge(ctx, followerID, targetID)
	if err != nil {
		return nil, err
	}
	cache.InvalidateSuggested(ctx, followerID)
	observability.FollowEvents.WithLabelValues("follow").Inc()
	return edge, nil
}

// Unfollow removes the edge unconditionally, whatever its status.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	if err := s.followRepo.Delete(ctx, followerID, targetID); err != nil {
		return err
	}
	cache.InvalidateSuggested(ctx, followerID)
	observability.FollowEvents.WithLabelValues("unfollow").Inc()
	return nil
}

// PendingRequests lists incoming pending edges for the user.
func (s *FollowService) PendingRequests(ctx context.Context, userID uint) ([]models.FollowEdge, error) {
	return s.followRepo.GetPendingRequests(ctx, userID)
}

// Approve flips a pending incoming edge to approved. Only the edge's
// target may approve it.
func (s *FollowService) Approve(ctx context.Context, userID, edgeID uint) (*models.FollowEdge, error) {
	edge, err := s.followRepo.GetByID(ctx, edgeID)
	if err != nil {
		return nil, err
	}
	if edge.FollowingID != userID {
		return nil, models.NewUnauthorizedError("You can only approve requests sent to you")
	}
	if edge.Status != models.FollowStatusPending {
		return nil, models.NewConflictError("Follow request is not pending")
	}
	if err := s.followRepo.UpdateStatus(ctx, edgeID, models.FollowStatusApproved); err != nil {
		return nil, err
	}
	observability.FollowEvents.WithLabelValues("approve").Inc()
	return s.followRepo.GetByID(ctx, edgeID)
}

// Decline removes a pending incoming edge. Only the edge's target may
// decline it.
func (s *FollowService) Decline(ctx context.Context, userID, edgeID uint) error {
	edge, err := s.followRepo.GetByID(ctx, edgeID)
	if err != nil {
		return err
	}
	if edge.FollowingID != userID {
		return models.NewUnauthorizedError("You can only decline requests sent to you")
	}
	if edge.Status != models.FollowStatusPending {
		return models.NewConflictError("Follow request is not pending")
	}
	if err := s.followRepo.DeleteByID(ctx, edgeID); err != nil {
		return err
	}
	observability.FollowEvents.WithLabelValues("decline").Inc()
	return nil
}

// Followers lists users with approved edges into userID.
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.GetFollowers(ctx, userID)
}

// Following lists users userID follows with approved edges.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.GetFollowing(ctx, userID)
}

// Mutual computes the intersection of both users' approved following sets.
func (s *FollowService) Mutual(ctx context.Context, userA, userB uint) ([]models.User, error) {
	return s.followRepo.MutualConnections(ctx, userA, userB)
}

// Suggested performs the two-hop follows-of-follows traversal, excluding
// the user and anyone they already follow (pending edges included), ranked
// by occurrence count descending with ties broken by first-seen order.
// When the neighborhood is empty it falls back to any other users.
func (s *FollowService) Suggested(ctx context.Context, userID uint, limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = 5
	}

	// Short-lived cache; also invalidated on follow and unfollow.
	var suggested []models.User
	err := cache.Aside(ctx, cache.SuggestedKey(userID), &suggested, cache.SuggestedTTL, func() error {
		var ferr error
		suggested, ferr = s.computeSuggested(ctx, userID, limit)
		return ferr
	})
	if err != nil {
		return nil, err
	}
	return suggested, nil
}

func (s *FollowService) computeSuggested(ctx context.Context, userID uint, limit int) ([]models.User, error) {
	followingIDs, err := s.followRepo.GetFollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	excluded := make(map[uint]bool, len(followingIDs)+1)
	excluded[userID] = true
	for _, id := range followingIDs {
		excluded[id] = true
	}

	candidates, err := s.followRepo.TwoHopCandidates(ctx, userID)
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int)
	var order []uint // first-seen order for the stable tie-break
	for _, c := range candidates {
		if excluded[c.CandidateID] {
			continue
		}
		if counts[c.CandidateID] == 0 {
			order = append(order, c.CandidateID)
		}
		counts[c.CandidateID]++
	}

	if len(order) == 0 {
		// Empty neighborhood: suggest any other users.
		return s.followRepo.ListOthers(ctx, userID, followingIDs, limit)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}

	users, err := s.userRepo.GetByIDs(ctx, order)
	if err != nil {
		return nil, err
	}

	// Restore ranking order; GetByIDs does not preserve it.
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	ranked := make([]models.User, 0, len(order))
	for _, id := range order {
		if u, ok := byID[id]; ok {
			ranked = append(ranked, u)
		}
	}
	return ranked, nil
}
