package models

import (
	"time"

	"gorm.io/gorm"
)

// BookStatus represents a user's reading status for a book.
type BookStatus string

const (
	BookStatusReading  BookStatus = "reading"
	BookStatusFinished BookStatus = "finished"
	BookStatusToRead   BookStatus = "to_read"
)

// ValidBookStatus reports whether s is a recognized reading status.
func ValidBookStatus(s BookStatus) bool {
	switch s {
	case BookStatusReading, BookStatusFinished, BookStatusToRead:
		return true
	}
	return false
}

// Book is a book-club entry authored by a user.
type Book struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	Title       string     `gorm:"not null" json:"title"`
	Author      string     `json:"author"`
	Status      BookStatus `gorm:"type:varchar(20);default:'to_read'" json:"status"`
	Review      string     `json:"review"`
	Rating      int        `json:"rating"`
	IsAnonymous bool       `gorm:"default:false" json:"is_anonymous"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
