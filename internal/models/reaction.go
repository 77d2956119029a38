package models

import "time"

// ReactionMark records a per-user, per-target, per-kind reaction flag.
// Marks are private: only the owning user ever reads them back, and no
// aggregate count is exposed to other users.
type ReactionMark struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Room     string `gorm:"size:40;not null;uniqueIndex:idx_room_target_user_kind" json:"room"`
	TargetID uint   `gorm:"not null;uniqueIndex:idx_room_target_user_kind" json:"target_id"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_room_target_user_kind" json:"user_id"`
	Kind     string `gorm:"size:40;not null;uniqueIndex:idx_room_target_user_kind" json:"kind"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (ReactionMark) TableName() string {
	return "reaction_marks"
}
