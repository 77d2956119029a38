package server

import (
	"sunflowerpost/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	edge, err := s.followService.Follow(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return respondAppError(c, err)
	}

	observability.FollowEvents.WithLabelValues(string(edge.Status)).Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"follow": edge,
		"status": edge.Status,
	})
}

// UnfollowUser handles DELETE /api/users/:id/follow
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Unfollow(c.Context(), currentUserID(c), targetID); err != nil {
		return respondAppError(c, err)
	}

	observability.FollowEvents.WithLabelValues("unfollowed").Inc()
	return c.JSON(fiber.Map{"message": "Unfollowed"})
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	followers, err := s.followService.Followers(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"followers": followers})
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	following, err := s.followService.Following(c.Context(), userID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"following": following})
}

// GetMutualConnections handles GET /api/users/:id/mutual
func (s *Server) GetMutualConnections(c *fiber.Ctx) error {
	otherID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	mutual, err := s.followService.Mutual(c.Context(), currentUserID(c), otherID)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"mutual": mutual})
}

// GetSuggestedUsers handles GET /api/users/preview
func (s *Server) GetSuggestedUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 5)

	suggested, err := s.followService.Suggested(c.Context(), currentUserID(c), p.Limit)
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"suggested": suggested})
}

// GetPendingFollowRequests handles GET /api/follows/requests
func (s *Server) GetPendingFollowRequests(c *fiber.Ctx) error {
	requests, err := s.followService.PendingRequests(c.Context(), currentUserID(c))
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"requests": requests})
}

// ApproveFollowRequest handles POST /api/follows/requests/:id/approve
func (s *Server) ApproveFollowRequest(c *fiber.Ctx) error {
	edgeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	edge, err := s.followService.Approve(c.Context(), currentUserID(c), edgeID)
	if err != nil {
		return respondAppError(c, err)
	}

	observability.FollowEvents.WithLabelValues("approved").Inc()
	return c.JSON(fiber.Map{"follow": edge})
}

// DeclineFollowRequest handles POST /api/follows/requests/:id/decline
func (s *Server) DeclineFollowRequest(c *fiber.Ctx) error {
	edgeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Decline(c.Context(), currentUserID(c), edgeID); err != nil {
		return respondAppError(c, err)
	}

	observability.FollowEvents.WithLabelValues("declined").Inc()
	return c.JSON(fiber.Map{"message": "Request declined"})
}
