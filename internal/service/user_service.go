package service

import (
	"context"

	"sunflowerpost/internal/anonymity"
	"sunflowerpost/internal/models"
	"sunflowerpost/internal/repository"
	"sunflowerpost/internal/rooms"
)

// UserService implements profile, settings, and profile-view logic.
type UserService struct {
	userRepo       repository.UserRepository
	bookRepo       repository.BookRepository
	tvMovieRepo    repository.TVMovieRepository
	discussionRepo repository.DiscussionRepository
	listItemRepo   repository.ListItemRepository
}

// NewUserService creates a new UserService.
func NewUserService(
	userRepo repository.UserRepository,
	bookRepo repository.BookRepository,
	tvMovieRepo repository.TVMovieRepository,
	discussionRepo repository.DiscussionRepository,
	listItemRepo repository.ListItemRepository,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		bookRepo:       bookRepo,
		tvMovieRepo:    tvMovieRepo,
		discussionRepo: discussionRepo,
		listItemRepo:   listItemRepo,
	}
}

// UpdateProfileInput carries optional profile fields; empty values are left
// unchanged.
type UpdateProfileInput struct {
	UserID   uint
	Username string
	Bio      string
	Avatar   string
}

// PrivacyInput carries privacy flags; nil fields are left unchanged.
type PrivacyInput struct {
	UserID                uint
	ProfilePublic         *bool
	RequireFollowApproval *bool
	DefaultAnonymous      *bool
	ActivityVisible       *bool
}

// CustomizationInput carries optional profile customization fields.
type CustomizationInput struct {
	UserID       uint
	CoverPhoto   string
	ThemeColor   string
	Badge        string
	PinnedPostID *uint
}

// ActivityItem is one entry of a profile's activity feed, already passed
// through the anonymity projector.
type ActivityItem struct {
	Type      string             `json:"type"`
	ID        uint               `json:"id"`
	Room      string             `json:"room,omitempty"`
	Title     string             `json:"title"`
	CreatedAt int64              `json:"created_at"`
	Author    anonymity.Identity `json:"author"`
}

// ProfileView is what a viewer sees of a profile.
type ProfileView struct {
	User     *models.User   `json:"user"`
	IsOwner  bool           `json:"is_owner"`
	Activity []ActivityItem `json:"activity"`
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	const maxBioLen = 500
	const maxUsernameLen = 30

	if in.Username != "" {
		if len(in.Username) > maxUsernameLen {
			return nil, models.NewValidationError("Username too long (max 30 characters)")
		}
		user.Username = in.Username
	}
	if in.Bio != "" {
		if len(in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		user.Bio = in.Bio
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdatePrivacy applies the privacy flags that were set. The alias is
// untouched: flipping DefaultAnonymous on and off never regenerates it.
func (s *UserService) UpdatePrivacy(ctx context.Context, in PrivacyInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.ProfilePublic != nil {
		user.ProfilePublic = *in.ProfilePublic
	}
	if in.RequireFollowApproval != nil {
		user.RequireFollowApproval = *in.RequireFollowApproval
	}
	if in.DefaultAnonymous != nil {
		user.DefaultAnonymous = *in.DefaultAnonymous
	}
	if in.ActivityVisible != nil {
		user.ActivityVisible = *in.ActivityVisible
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateCustomization(ctx context.Context, in CustomizationInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.CoverPhoto != "" {
		user.CoverPhoto = in.CoverPhoto
	}
	if in.ThemeColor != "" {
		user.ThemeColor = in.ThemeColor
	}
	if in.Badge != "" {
		user.Badge = in.Badge
	}
	if in.PinnedPostID != nil {
		user.PinnedPostID = in.PinnedPostID
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetProfile assembles a profile as seen by viewerID. Owners see all their
// activity; other viewers never see items flagged anonymous, and see no
// activity at all when the owner has hidden it or made the profile private.
func (s *UserService) GetProfile(ctx context.Context, viewerID, targetID uint) (*ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	isOwner := viewerID == targetID
	view := &ProfileView{User: user, IsOwner: isOwner}

	if !isOwner && !user.ProfilePublic {
		return nil, models.NewForbiddenError("This profile is private")
	}
	if !isOwner && !user.ActivityVisible {
		return view, nil
	}

	activity, err := s.collectActivity(ctx, user, isOwner)
	if err != nil {
		return nil, err
	}
	view.Activity = activity
	return view, nil
}

func (s *UserService) collectActivity(ctx context.Context, user *models.User, includeAnonymous bool) ([]ActivityItem, error) {
	var items []ActivityItem

	books, err := s.bookRepo.ListByUser(ctx, user.ID, includeAnonymous)
	if err != nil {
		return nil, err
	}
	for _, b := range books {
		items = append(items, ActivityItem{
			Type:      "book",
			ID:        b.ID,
			Room:      rooms.BookClub,
			Title:     b.Title,
			CreatedAt: b.CreatedAt.Unix(),
			Author:    anonymity.Project(user, b.IsAnonymous),
		})
	}

	shows, err := s.tvMovieRepo.ListByUser(ctx, user.ID, includeAnonymous)
	if err != nil {
		return nil, err
	}
	for _, m := range shows {
		items = append(items, ActivityItem{
			Type:      "tv_movie",
			ID:        m.ID,
			Room:      rooms.ScreeningRoom,
			Title:     m.Title,
			CreatedAt: m.CreatedAt.Unix(),
			Author:    anonymity.Project(user, m.IsAnonymous),
		})
	}

	discussions, err := s.discussionRepo.ListByUser(ctx, user.ID, includeAnonymous)
	if err != nil {
		return nil, err
	}
	for _, d := range discussions {
		items = append(items, ActivityItem{
			Type:      "discussion",
			ID:        d.ID,
			Room:      d.Room,
			Title:     d.Title,
			CreatedAt: d.CreatedAt.Unix(),
			Author:    anonymity.Project(user, d.IsAnonymous),
		})
	}

	listItems, err := s.listItemRepo.ListByUser(ctx, user.ID, includeAnonymous)
	if err != nil {
		return nil, err
	}
	for _, li := range listItems {
		items = append(items, ActivityItem{
			Type:      "list_item",
			ID:        li.ID,
			Room:      li.Room,
			Title:     li.Title,
			CreatedAt: li.CreatedAt.Unix(),
			Author:    anonymity.Project(user, li.IsAnonymous),
		})
	}

	return items, nil
}
