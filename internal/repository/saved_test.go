package repository

import (
	"context"
	"testing"

	"sunflowerpost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavedRepository_SaveDuplicateIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSavedRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "saver")

	require.NoError(t, repo.Save(ctx, &models.SavedItem{
		UserID: user.ID, ItemType: "book", ItemID: 12,
	}))
	require.NoError(t, repo.Save(ctx, &models.SavedItem{
		UserID: user.ID, ItemType: "book", ItemID: 12,
	}))

	var count int64
	require.NoError(t, db.Model(&models.SavedItem{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	saved, err := repo.IsSaved(ctx, user.ID, "book", 12)
	require.NoError(t, err)
	assert.True(t, saved)
}

func TestSavedRepository_UnsaveAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSavedRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "saver")
	other := createTestUser(t, db, "other")

	require.NoError(t, repo.Save(ctx, &models.SavedItem{UserID: user.ID, ItemType: "book", ItemID: 1}))
	require.NoError(t, repo.Save(ctx, &models.SavedItem{UserID: user.ID, ItemType: "discussion", ItemID: 2}))
	require.NoError(t, repo.Save(ctx, &models.SavedItem{UserID: other.ID, ItemType: "book", ItemID: 1}))

	items, err := repo.List(ctx, user.ID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	require.NoError(t, repo.Unsave(ctx, user.ID, "book", 1))

	items, err = repo.List(ctx, user.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "discussion", items[0].ItemType)

	// the other user's bookmark is untouched
	saved, err := repo.IsSaved(ctx, other.ID, "book", 1)
	require.NoError(t, err)
	assert.True(t, saved)
}
