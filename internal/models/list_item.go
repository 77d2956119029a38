package models

import (
	"time"

	"gorm.io/gorm"
)

// ListItem is a per-room ordered list entry (music-room picks, mood-board
// cards, and similar lightweight content).
type ListItem struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Room        string `gorm:"size:40;not null;index" json:"room"`
	UserID      uint   `gorm:"not null;index" json:"user_id"`
	Title       string `gorm:"not null" json:"title"`
	Note        string `json:"note"`
	Position    int    `gorm:"default:0" json:"position"`
	IsAnonymous bool   `gorm:"default:false" json:"is_anonymous"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
