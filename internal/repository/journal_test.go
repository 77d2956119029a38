package repository

import (
	"context"
	"testing"

	"sunflowerpost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalRepository_QueriesAreOwnerScoped(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJournalRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	stranger := createTestUser(t, db, "stranger")

	entry := &models.JournalEntry{UserID: owner.ID, Title: "Morning pages", Body: "slept well", Mood: "calm"}
	require.NoError(t, repo.Create(ctx, entry))

	got, err := repo.GetByID(ctx, entry.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Morning pages", got.Title)

	// another user asking for the same id gets a not-found, not a leak
	_, err = repo.GetByID(ctx, entry.ID, stranger.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	entries, err := repo.ListByUser(ctx, stranger.ID, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournalRepository_DeleteScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewJournalRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	stranger := createTestUser(t, db, "stranger")

	entry := &models.JournalEntry{UserID: owner.ID, Title: "Private", Body: "keep out"}
	require.NoError(t, repo.Create(ctx, entry))

	// a delete by the wrong user matches no rows and is silently a no-op
	require.NoError(t, repo.Delete(ctx, entry.ID, stranger.ID))
	_, err := repo.GetByID(ctx, entry.ID, owner.ID)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, entry.ID, owner.ID))
	_, err = repo.GetByID(ctx, entry.ID, owner.ID)
	require.Error(t, err)
}
