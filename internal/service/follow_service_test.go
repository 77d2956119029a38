package service

import (
	"context"
	"fmt"
	"testing"

	"sunflowerpost/internal/models"
	"sunflowerpost/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.FollowEdge{},
		&models.Book{},
		&models.TVMovie{},
		&models.Discussion{},
		&models.Reply{},
		&models.ListItem{},
		&models.JournalEntry{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string, overrides ...func(*models.User)) *models.User {
	t.Helper()
	user := &models.User{
		Username:        name,
		Email:           fmt.Sprintf("%s@example.com", name),
		Password:        "hashed",
		Alias:           "Alias" + name,
		ProfilePublic:   true,
		ActivityVisible: true,
	}
	for _, o := range overrides {
		o(user)
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newFollowService(db *gorm.DB) *FollowService {
	return NewFollowService(repository.NewFollowRepository(db), repository.NewUserRepository(db))
}

func TestFollowService_FollowApprovedByDefault(t *testing.T) {
	db := setupServiceDB(t)
	svc := newFollowService(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")

	edge, err := svc.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FollowStatusApproved, edge.Status)
}

func TestFollowService_FollowPendingWhenApprovalRequired(t *testing.T) {
	db := setupServiceDB(t)
	svc := newFollowService(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob", func(u *models.User) { u.RequireFollowApproval = true })

	edge, err := svc.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FollowStatusPending, edge.Status)

	// repeat follow must not duplicate or bump the edge to approved
	edge, err = svc.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FollowStatusPending, edge.Status)

	var count int64
	require.NoError(t, db.Model(&models.FollowEdge{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFollowService_SelfFollowRejected(t *testing.T) {
	db := setupServiceDB(t)
	svc := newFollowService(db)

	a := seedUser(t, db, "alice")

	_, err := svc.Follow(context.Background(), a.ID, a.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestFollowService_ApproveAndDecline(t *testing.T) {
	db := setupServiceDB(t)
	svc := newFollowService(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob", func(u *models.User) { u.RequireFollowApproval = true })
	c := seedUser(t, db, "carol")

	edge, err := svc.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)

	// only the target can approve
	_, err = svc.Approve(ctx, c.ID, edge.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)

	approved, err := svc.Approve(ctx, b.ID, edge.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FollowStatusApproved, approved.Status)

	// approving twice conflicts; the edge is no longer pending
	_, err = svc.Approve(ctx, b.ID, edge.ID)
	require.Error(t, err)
	appErr, ok = err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "CONFLICT", appErr.Code)

	followers, err := svc.Followers(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, a.ID, followers[0].ID)
}

func TestFollowService_DeclineRemovesEdge(t *testing.T) {
	db := setupServiceDB(t)
	svc := newFollowService(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob", func(u *models.User) { u.RequireFollowApproval = true })

	edge, err := svc.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Decline(ctx, b.ID, edge.ID))

	var count int64
	require.NoError(t, db.Model(&models.FollowEdge{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestFollowService_MutualUsesApprovedOnly(t *testing.T) {
	db := setupServiceDB(t)
	svc := newFollowService(db)
	ctx := context.Background()

	a := seedUser(t, db, "alice")
	b := seedUser(t, db, "bob")
	shared := seedUser(t, db, "shared")
	gated := seedUser(t, db, "gated", func(u *models.User) { u.RequireFollowApproval = true })

	_, err := svc.Follow(ctx, a.ID, shared.ID)
	require.NoError(t, err)
	_, err = svc.Follow(ctx, b.ID, shared.ID)
	require.NoError(t, err)

	// both follow gated, but b's edge stays pending
	_, err = svc.Follow(ctx, a.ID, gated.ID)
	require.NoError(t, err)
	require.NoError(t, repository.NewFollowRepository(db).UpdateStatus(ctx, mustEdgeID(t, db, a.ID, gated.ID), models.FollowStatusApproved))
	_, err = svc.Follow(ctx, b.ID, gated.ID)
	require.NoError(t, err)

	mutual, err := svc.Mutual(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, mutual, 1)
	assert.Equal(t, shared.ID, mutual[0].ID)
}

func mustEdgeID(t *testing.T, db *gorm.DB, followerID, followingID uint) uint {
	t.Helper()
	var edge models.FollowEdge
	require.NoError(t, db.Where("follower_id = ? AND following_id = ?", followerID, followingID).First(&edge).Error)
	return edge.ID
}

func TestFollowService_SuggestedRanking(t *testing.T) {
	db := setupServiceDB(t)
	svc := newFollowService(db)
	ctx := context.Background()

	me := seedUser(t, db, "me")
	f1 := seedUser(t, db, "friend1")
	f2 := seedUser(t, db, "friend2")
	popular := seedUser(t, db, "popular")
	niche := seedUser(t, db, "niche")

	for _, pair := range [][2]uint{
		{me.ID, f1.ID}, {me.ID, f2.ID},
		{f1.ID, popular.ID}, {f2.ID, popular.ID},
		{f1.ID, niche.ID},
	} {
		_, err := svc.Follow(ctx, pair[0], pair[1])
		require.NoError(t, err)
	}

	suggested, err := svc.Suggested(ctx, me.ID, 5)
	require.NoError(t, err)
	require.Len(t, suggested, 2)
	assert.Equal(t, popular.ID, suggested[0].ID, "candidate seen twice ranks first")
	assert.Equal(t, niche.ID, suggested[1].ID)
}

func TestFollowService_SuggestedExcludesAlreadyFollowed(t *testing.T) {
	db := setupServiceDB(t)
	svc := newFollowService(db)
	ctx := context.Background()

	me := seedUser(t, db, "me")
	f1 := seedUser(t, db, "friend1")
	known := seedUser(t, db, "known")

	for _, pair := range [][2]uint{
		{me.ID, f1.ID}, {me.ID, known.ID}, {f1.ID, known.ID},
	} {
		_, err := svc.Follow(ctx, pair[0], pair[1])
		require.NoError(t, err)
	}

	suggested, err := svc.Suggested(ctx, me.ID, 5)
	require.NoError(t, err)
	for _, u := range suggested {
		assert.NotEqual(t, known.ID, u.ID)
		assert.NotEqual(t, me.ID, u.ID)
	}
}

func TestFollowService_SuggestedFallsBackToOthers(t *testing.T) {
	db := setupServiceDB(t)
	svc := newFollowService(db)
	ctx := context.Background()

	me := seedUser(t, db, "me")
	stranger1 := seedUser(t, db, "stranger1")
	stranger2 := seedUser(t, db, "stranger2")

	suggested, err := svc.Suggested(ctx, me.ID, 5)
	require.NoError(t, err)

	ids := make([]uint, 0, len(suggested))
	for _, u := range suggested {
		ids = append(ids, u.ID)
	}
	assert.ElementsMatch(t, []uint{stranger1.ID, stranger2.ID}, ids)
}
