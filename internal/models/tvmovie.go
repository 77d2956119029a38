package models

import (
	"time"

	"gorm.io/gorm"
)

// WatchStatus represents a user's viewing status for a show or movie.
type WatchStatus string

const (
	WatchStatusWatching  WatchStatus = "watching"
	WatchStatusFinished  WatchStatus = "finished"
	WatchStatusWatchlist WatchStatus = "watchlist"
)

// ValidWatchStatus reports whether s is a recognized viewing status.
func ValidWatchStatus(s WatchStatus) bool {
	switch s {
	case WatchStatusWatching, WatchStatusFinished, WatchStatusWatchlist:
		return true
	}
	return false
}

// TVMovie is a screening-room entry authored by a user.
// Kind distinguishes series from films ("tv" or "movie").
type TVMovie struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	Title       string      `gorm:"not null" json:"title"`
	Kind        string      `gorm:"size:10;default:'movie'" json:"kind"`
	Status      WatchStatus `gorm:"type:varchar(20);default:'watchlist'" json:"status"`
	Review      string      `json:"review"`
	IsAnonymous bool        `gorm:"default:false" json:"is_anonymous"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (TVMovie) TableName() string {
	return "tv_movies"
}
