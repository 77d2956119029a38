// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"sunflowerpost/internal/anonymity"
	"sunflowerpost/internal/models"
	"sunflowerpost/internal/rooms"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by seed presets and tests.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// backdate produces a created_at spread over the last maxDays days.
func (f *Factory) backdate(maxDays int) time.Time {
	daysBack := f.r.Intn(maxDays)
	hoursBack := f.r.Intn(24)
	minsBack := f.r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("seed-password-1"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:        gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:           gofakeit.Email(),
		Password:        string(hashed),
		Alias:           anonymity.NewAlias(f.r),
		Bio:             gofakeit.Sentence(10),
		Avatar:          fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		ProfilePublic:   true,
		ActivityVisible: true,
		CreatedAt:       f.backdate(180),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateFollow persists an approved follow edge from follower to following.
func (f *Factory) CreateFollow(followerID, followingID uint, status models.FollowStatus) (*models.FollowEdge, error) {
	edge := &models.FollowEdge{
		FollowerID:  followerID,
		FollowingID: followingID,
		Status:      status,
	}
	if err := f.db.Create(edge).Error; err != nil {
		return nil, err
	}
	return edge, nil
}

// CreateBook persists a sample book-club entry for the user.
func (f *Factory) CreateBook(user *models.User, overrides ...func(*models.Book)) (*models.Book, error) {
	statuses := []models.BookStatus{
		models.BookStatusReading, models.BookStatusFinished, models.BookStatusToRead,
	}
	book := &models.Book{
		UserID:    user.ID,
		Title:     gofakeit.BookTitle(),
		Author:    gofakeit.BookAuthor(),
		Status:    statuses[f.r.Intn(len(statuses))],
		Review:    gofakeit.Paragraph(1, 2, 8, " "),
		Rating:    gofakeit.Number(1, 5),
		CreatedAt: f.backdate(90),
	}
	for _, override := range overrides {
		override(book)
	}

	if err := f.db.Create(book).Error; err != nil {
		return nil, err
	}
	return book, nil
}

// CreateTVMovie persists a sample screening-room entry for the user.
func (f *Factory) CreateTVMovie(user *models.User, overrides ...func(*models.TVMovie)) (*models.TVMovie, error) {
	statuses := []models.WatchStatus{
		models.WatchStatusWatching, models.WatchStatusFinished, models.WatchStatusWatchlist,
	}
	kinds := []string{"tv", "movie"}
	entry := &models.TVMovie{
		UserID:    user.ID,
		Title:     gofakeit.MovieName(),
		Kind:      kinds[f.r.Intn(len(kinds))],
		Status:    statuses[f.r.Intn(len(statuses))],
		Review:    gofakeit.Sentence(12),
		CreatedAt: f.backdate(90),
	}
	for _, override := range overrides {
		override(entry)
	}

	if err := f.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateDiscussion persists a sample discussion in a random room.
func (f *Factory) CreateDiscussion(user *models.User, overrides ...func(*models.Discussion)) (*models.Discussion, error) {
	all := rooms.All()
	discussion := &models.Discussion{
		Room:      all[f.r.Intn(len(all))],
		UserID:    user.ID,
		Title:     gofakeit.Sentence(6),
		Body:      gofakeit.Paragraph(1, 3, 10, "\n"),
		CreatedAt: f.backdate(60),
	}
	for _, override := range overrides {
		override(discussion)
	}

	if err := f.db.Create(discussion).Error; err != nil {
		return nil, err
	}
	return discussion, nil
}

// CreateReply persists a reply and bumps the discussion's counter the same
// way the live path does.
func (f *Factory) CreateReply(user *models.User, discussion *models.Discussion) (*models.Reply, error) {
	reply := &models.Reply{
		DiscussionID: discussion.ID,
		UserID:       user.ID,
		Body:         gofakeit.Sentence(14),
		CreatedAt:    f.backdate(30),
	}
	if err := f.db.Create(reply).Error; err != nil {
		return nil, err
	}
	if err := f.db.Model(discussion).
		UpdateColumn("replies_count", gorm.Expr("replies_count + 1")).Error; err != nil {
		return nil, err
	}
	return reply, nil
}

// CreateListItem persists a list entry in the given room.
func (f *Factory) CreateListItem(user *models.User, room string, position int) (*models.ListItem, error) {
	item := &models.ListItem{
		Room:      room,
		UserID:    user.ID,
		Title:     gofakeit.Sentence(4),
		Note:      gofakeit.Sentence(8),
		Position:  position,
		CreatedAt: f.backdate(45),
	}
	if err := f.db.Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// CreateJournalEntry persists a private journal entry for the user.
func (f *Factory) CreateJournalEntry(user *models.User) (*models.JournalEntry, error) {
	moods := []string{"calm", "hopeful", "tired", "grateful", "anxious", "content"}
	entry := &models.JournalEntry{
		UserID:    user.ID,
		Title:     gofakeit.Sentence(4),
		Body:      gofakeit.Paragraph(2, 3, 12, "\n"),
		Mood:      moods[f.r.Intn(len(moods))],
		CreatedAt: f.backdate(30),
	}
	if err := f.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateReaction persists an active reaction mark.
func (f *Factory) CreateReaction(user *models.User, room string, targetID uint) (*models.ReactionMark, error) {
	kinds := rooms.ReactionsFor(room)
	mark := &models.ReactionMark{
		Room:     room,
		TargetID: targetID,
		UserID:   user.ID,
		Kind:     kinds[f.r.Intn(len(kinds))],
		Active:   true,
	}
	if err := f.db.Create(mark).Error; err != nil {
		return nil, err
	}
	return mark, nil
}
