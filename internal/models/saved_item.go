package models

import "time"

// SavedItem marks a bookmark. The (user, type, id) triple is unique.
type SavedItem struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_user_item" json:"user_id"`
	ItemType string `gorm:"size:40;not null;uniqueIndex:idx_user_item" json:"item_type"`
	ItemID   uint   `gorm:"not null;uniqueIndex:idx_user_item" json:"item_id"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (SavedItem) TableName() string {
	return "saved_items"
}
