package seed

import (
	"fmt"
	"log"

	"sunflowerpost/internal/models"
	"sunflowerpost/internal/rooms"

	"gorm.io/gorm"
)

// Options configures a full demo seed run.
type Options struct {
	NumUsers    int
	ShouldClean bool
}

// Run populates the database with a connected demo community: users, a
// follow mesh with a few pending edges, room content, reactions, saved
// items, and private journals.
func Run(db *gorm.DB, opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return fmt.Errorf("clean existing data: %w", err)
		}
	}

	f := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		overrides := []func(*models.User){}
		// every fifth account requires follow approval, every seventh
		// defaults to anonymous posting
		if i%5 == 0 {
			overrides = append(overrides, func(u *models.User) { u.RequireFollowApproval = true })
		}
		if i%7 == 0 {
			overrides = append(overrides, func(u *models.User) { u.DefaultAnonymous = true })
		}
		user, err := f.CreateUser(overrides...)
		if err != nil {
			return fmt.Errorf("create user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("seeded %d users", len(users))

	// Follow mesh: each user follows the next few, wrapping around.
	edges := 0
	for i, u := range users {
		for k := 1; k <= 3; k++ {
			target := users[(i+k)%len(users)]
			if target.ID == u.ID {
				continue
			}
			status := models.FollowStatusApproved
			if target.RequireFollowApproval && k == 3 {
				status = models.FollowStatusPending
			}
			if _, err := f.CreateFollow(u.ID, target.ID, status); err != nil {
				return fmt.Errorf("create follow: %w", err)
			}
			edges++
		}
	}
	log.Printf("seeded %d follow edges", edges)

	for i, u := range users {
		book, err := f.CreateBook(u, func(b *models.Book) {
			b.IsAnonymous = i%6 == 0
		})
		if err != nil {
			return fmt.Errorf("create book: %w", err)
		}

		if _, err := f.CreateTVMovie(u); err != nil {
			return fmt.Errorf("create tv/movie entry: %w", err)
		}

		discussion, err := f.CreateDiscussion(u)
		if err != nil {
			return fmt.Errorf("create discussion: %w", err)
		}
		replier := users[(i+1)%len(users)]
		if _, err := f.CreateReply(replier, discussion); err != nil {
			return fmt.Errorf("create reply: %w", err)
		}

		if _, err := f.CreateListItem(u, rooms.MusicRoom, i); err != nil {
			return fmt.Errorf("create list item: %w", err)
		}

		if _, err := f.CreateJournalEntry(u); err != nil {
			return fmt.Errorf("create journal entry: %w", err)
		}

		reactor := users[(i+2)%len(users)]
		if _, err := f.CreateReaction(reactor, rooms.BookClub, book.ID); err != nil {
			return fmt.Errorf("create reaction: %w", err)
		}

		saved := &models.SavedItem{
			UserID:   users[(i+3)%len(users)].ID,
			ItemType: "book",
			ItemID:   book.ID,
		}
		if err := db.Create(saved).Error; err != nil {
			return fmt.Errorf("create saved item: %w", err)
		}
	}
	log.Printf("seeded room content for %d users", len(users))

	return nil
}

func clean(db *gorm.DB) error {
	// Order respects foreign keys.
	tables := []any{
		&models.SavedItem{},
		&models.ReactionMark{},
		&models.Reply{},
		&models.Discussion{},
		&models.JournalEntry{},
		&models.ListItem{},
		&models.TVMovie{},
		&models.Book{},
		&models.FollowEdge{},
		&models.User{},
	}
	for _, t := range tables {
		if err := db.Unscoped().Where("1 = 1").Delete(t).Error; err != nil {
			return err
		}
	}
	return nil
}
