package models

import (
	"time"

	"gorm.io/gorm"
)

// Discussion is a threaded conversation inside a room.
type Discussion struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Room         string `gorm:"size:40;not null;index" json:"room"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	Title        string `gorm:"not null" json:"title"`
	Body         string `json:"body"`
	IsAnonymous  bool   `gorm:"default:false" json:"is_anonymous"`
	RepliesCount int    `gorm:"default:0" json:"replies_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Replies []Reply `gorm:"foreignKey:DiscussionID" json:"replies,omitempty"`
}

// Reply is a response to a discussion.
type Reply struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	DiscussionID uint   `gorm:"not null;index" json:"discussion_id"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	Body         string `gorm:"not null" json:"body"`
	IsAnonymous  bool   `gorm:"default:false" json:"is_anonymous"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
