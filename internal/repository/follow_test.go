package repository

import (
	"context"
	"fmt"
	"testing"

	"sunflowerpost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.FollowEdge{},
		&models.ReactionMark{},
		&models.SavedItem{},
		&models.Book{},
		&models.TVMovie{},
		&models.Discussion{},
		&models.Reply{},
		&models.JournalEntry{},
		&models.ListItem{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Username: name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed",
		Alias:    "Alias" + name,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestFollowRepository_UpsertIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	a := createTestUser(t, db, "alice")
	b := createTestUser(t, db, "bob")

	first := &models.FollowEdge{FollowerID: a.ID, FollowingID: b.ID, Status: models.FollowStatusPending}
	require.NoError(t, repo.Upsert(ctx, first))

	// second follow with a different status must not create a second row
	// or overwrite the first write
	second := &models.FollowEdge{FollowerID: a.ID, FollowingID: b.ID, Status: models.FollowStatusApproved}
	require.NoError(t, repo.Upsert(ctx, second))

	var count int64
	require.NoError(t, db.Model(&models.FollowEdge{}).
		Where("follower_id = ? AND following_id = ?", a.ID, b.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	edge, err := repo.GetEdge(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.NotNil(t, edge)
	assert.Equal(t, models.FollowStatusPending, edge.Status)
}

func TestFollowRepository_SelfFollowRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)

	a := createTestUser(t, db, "alice")

	err := repo.Upsert(context.Background(), &models.FollowEdge{
		FollowerID:  a.ID,
		FollowingID: a.ID,
		Status:      models.FollowStatusApproved,
	})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	var count int64
	require.NoError(t, db.Model(&models.FollowEdge{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestFollowRepository_GetEdgeAbsentReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)

	edge, err := repo.GetEdge(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Nil(t, edge)
}

func TestFollowRepository_FollowersAndFollowingAreApprovedOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	a := createTestUser(t, db, "alice")
	b := createTestUser(t, db, "bob")
	c := createTestUser(t, db, "carol")

	require.NoError(t, repo.Upsert(ctx, &models.FollowEdge{
		FollowerID: a.ID, FollowingID: b.ID, Status: models.FollowStatusApproved}))
	require.NoError(t, repo.Upsert(ctx, &models.FollowEdge{
		FollowerID: a.ID, FollowingID: c.ID, Status: models.FollowStatusPending}))

	following, err := repo.GetFollowing(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, b.ID, following[0].ID)

	followers, err := repo.GetFollowers(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, a.ID, followers[0].ID)

	// pending target has no followers yet
	followers, err = repo.GetFollowers(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, followers)

	// but the pending id is still excluded from suggestion universes
	ids, err := repo.GetFollowingIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{b.ID, c.ID}, ids)
}

func TestFollowRepository_MutualConnections(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	a := createTestUser(t, db, "alice")
	b := createTestUser(t, db, "bob")
	shared := createTestUser(t, db, "shared")
	pendingOnly := createTestUser(t, db, "pendingonly")

	for _, e := range []*models.FollowEdge{
		{FollowerID: a.ID, FollowingID: shared.ID, Status: models.FollowStatusApproved},
		{FollowerID: b.ID, FollowingID: shared.ID, Status: models.FollowStatusApproved},
		{FollowerID: a.ID, FollowingID: pendingOnly.ID, Status: models.FollowStatusApproved},
		{FollowerID: b.ID, FollowingID: pendingOnly.ID, Status: models.FollowStatusPending},
	} {
		require.NoError(t, repo.Upsert(ctx, e))
	}

	mutual, err := repo.MutualConnections(ctx, a.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, mutual, 1)
	assert.Equal(t, shared.ID, mutual[0].ID)
}

func TestFollowRepository_TwoHopCandidates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	me := createTestUser(t, db, "me")
	f1 := createTestUser(t, db, "friend1")
	f2 := createTestUser(t, db, "friend2")
	far := createTestUser(t, db, "far")
	popular := createTestUser(t, db, "popular")

	for _, e := range []*models.FollowEdge{
		{FollowerID: me.ID, FollowingID: f1.ID, Status: models.FollowStatusApproved},
		{FollowerID: me.ID, FollowingID: f2.ID, Status: models.FollowStatusApproved},
		{FollowerID: f1.ID, FollowingID: popular.ID, Status: models.FollowStatusApproved},
		{FollowerID: f2.ID, FollowingID: popular.ID, Status: models.FollowStatusApproved},
		{FollowerID: f1.ID, FollowingID: far.ID, Status: models.FollowStatusApproved},
		// cycles back to me; the traversal must not suggest myself
		{FollowerID: f2.ID, FollowingID: me.ID, Status: models.FollowStatusApproved},
	} {
		require.NoError(t, repo.Upsert(ctx, e))
	}

	edges, err := repo.TwoHopCandidates(ctx, me.ID)
	require.NoError(t, err)

	counts := map[uint]int{}
	for _, e := range edges {
		assert.NotEqual(t, me.ID, e.CandidateID)
		counts[e.CandidateID]++
	}
	assert.Equal(t, 2, counts[popular.ID])
	assert.Equal(t, 1, counts[far.ID])
}

func TestFollowRepository_ListOthers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	me := createTestUser(t, db, "me")
	other1 := createTestUser(t, db, "other1")
	other2 := createTestUser(t, db, "other2")
	excluded := createTestUser(t, db, "excluded")

	users, err := repo.ListOthers(ctx, me.ID, []uint{excluded.ID}, 10)
	require.NoError(t, err)

	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	assert.ElementsMatch(t, []uint{other1.ID, other2.ID}, ids)
}

func TestFollowRepository_ApproveAndDecline(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	a := createTestUser(t, db, "alice")
	b := createTestUser(t, db, "bob")

	edge := &models.FollowEdge{FollowerID: a.ID, FollowingID: b.ID, Status: models.FollowStatusPending}
	require.NoError(t, repo.Upsert(ctx, edge))

	pending, err := repo.GetPendingRequests(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, a.ID, pending[0].Follower.ID)

	require.NoError(t, repo.UpdateStatus(ctx, pending[0].ID, models.FollowStatusApproved))
	got, err := repo.GetEdge(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.FollowStatusApproved, got.Status)

	require.NoError(t, repo.DeleteByID(ctx, pending[0].ID))
	got, err = repo.GetEdge(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
