// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a member of The Sunflower Post.
//
// Alias is the persistent pseudonym assigned once at signup and used
// wherever the user posts anonymously. It is never regenerated.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Alias    string `gorm:"unique;not null" json:"alias"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`

	// Profile customization
	CoverPhoto   string `json:"cover_photo"`
	ThemeColor   string `json:"theme_color"`
	Badge        string `json:"badge"`
	PinnedPostID *uint  `json:"pinned_post_id,omitempty"`

	// Privacy settings
	ProfilePublic         bool `gorm:"default:true" json:"profile_public"`
	RequireFollowApproval bool `gorm:"default:false" json:"require_follow_approval"`
	DefaultAnonymous      bool `gorm:"default:false" json:"default_anonymous"`
	ActivityVisible       bool `gorm:"default:true" json:"activity_visible"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
