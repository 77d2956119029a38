package server

import (
	"sunflowerpost/internal/anonymity"
	"sunflowerpost/internal/models"

	"github.com/gofiber/fiber/v2"
)

// The wrappers below shape room content for the wire. They serve two
// purposes: the embedded User record never leaks private fields (email,
// settings), and anonymous items drop the author's user id for everyone
// but the author, so alias and account stay unlinkable.

func authorFields(m fiber.Map, user *models.User, userID uint, isAnonymous bool, viewerID uint) fiber.Map {
	m["posted_by"] = anonymity.Project(user, isAnonymous)
	if !isAnonymous || userID == viewerID {
		m["user_id"] = userID
	}
	return m
}

func bookJSON(b *models.Book, viewerID uint) fiber.Map {
	return authorFields(fiber.Map{
		"id":           b.ID,
		"title":        b.Title,
		"author":       b.Author,
		"status":       b.Status,
		"review":       b.Review,
		"rating":       b.Rating,
		"is_anonymous": b.IsAnonymous,
		"created_at":   b.CreatedAt,
		"updated_at":   b.UpdatedAt,
	}, &b.User, b.UserID, b.IsAnonymous, viewerID)
}

func tvMovieJSON(m *models.TVMovie, viewerID uint) fiber.Map {
	return authorFields(fiber.Map{
		"id":           m.ID,
		"title":        m.Title,
		"kind":         m.Kind,
		"status":       m.Status,
		"review":       m.Review,
		"is_anonymous": m.IsAnonymous,
		"created_at":   m.CreatedAt,
		"updated_at":   m.UpdatedAt,
	}, &m.User, m.UserID, m.IsAnonymous, viewerID)
}

func discussionJSON(d *models.Discussion, viewerID uint) fiber.Map {
	return authorFields(fiber.Map{
		"id":            d.ID,
		"room":          d.Room,
		"title":         d.Title,
		"body":          d.Body,
		"is_anonymous":  d.IsAnonymous,
		"replies_count": d.RepliesCount,
		"created_at":    d.CreatedAt,
		"updated_at":    d.UpdatedAt,
	}, &d.User, d.UserID, d.IsAnonymous, viewerID)
}

func replyJSON(r *models.Reply, viewerID uint) fiber.Map {
	return authorFields(fiber.Map{
		"id":            r.ID,
		"discussion_id": r.DiscussionID,
		"body":          r.Body,
		"is_anonymous":  r.IsAnonymous,
		"created_at":    r.CreatedAt,
	}, &r.User, r.UserID, r.IsAnonymous, viewerID)
}

func listItemJSON(li *models.ListItem, viewerID uint) fiber.Map {
	return authorFields(fiber.Map{
		"id":           li.ID,
		"room":         li.Room,
		"title":        li.Title,
		"note":         li.Note,
		"position":     li.Position,
		"is_anonymous": li.IsAnonymous,
		"created_at":   li.CreatedAt,
		"updated_at":   li.UpdatedAt,
	}, &li.User, li.UserID, li.IsAnonymous, viewerID)
}
