package models

import (
	"time"

	"gorm.io/gorm"
)

// JournalEntry is a private journal page. Entries are only ever visible to
// their author; there is no sharing path.
type JournalEntry struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
	Title  string `json:"title"`
	Body   string `gorm:"not null" json:"body"`
	Mood   string `gorm:"size:40" json:"mood"`

	// AIReflection holds the most recent assistant reflection for this
	// entry, stored as JSON.
	AIReflection string `json:"ai_reflection,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (JournalEntry) TableName() string {
	return "journal_entries"
}
