// Package models contains data structures for the application's domain models.
package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// FollowStatus represents the status of a follow edge.
type FollowStatus string

const (
	// FollowStatusPending indicates the target requires approval and has not
	// yet approved the edge.
	FollowStatusPending FollowStatus = "pending"
	// FollowStatusApproved indicates an active follow.
	FollowStatusApproved FollowStatus = "approved"
)

// ErrSelfFollow is returned when a user attempts to follow themselves.
var ErrSelfFollow = errors.New("users cannot follow themselves")

// FollowEdge is a directed relationship from Follower to Following.
// At most one edge exists per ordered pair.
type FollowEdge struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	FollowerID  uint         `gorm:"not null;uniqueIndex:idx_follower_following" json:"follower_id"`
	FollowingID uint         `gorm:"not null;uniqueIndex:idx_follower_following" json:"following_id"`
	Status      FollowStatus `gorm:"type:varchar(20);default:'approved'" json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relationships
	Follower  User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Following User `gorm:"foreignKey:FollowingID" json:"following,omitempty"`
}

// TableName specifies the table name for GORM
func (FollowEdge) TableName() string {
	return "follow_edges"
}

// BeforeCreate rejects self-edges at the persistence layer. Handlers check
// first, but the invariant must hold no matter the call path.
func (f *FollowEdge) BeforeCreate(_ *gorm.DB) error {
	if f.FollowerID == f.FollowingID {
		return ErrSelfFollow
	}
	return nil
}
