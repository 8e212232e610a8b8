package models

import "time"

// Follow is a directed edge in the social graph: follower follows followee.
// The follows table is the single authoritative store for the graph; the
// per-user counters are derived from it. The composite unique index makes a
// duplicate follow a constraint violation rather than a silent no-op.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follows_edge;index" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follows_edge;index" json:"followee_id"`
	Follower   User      `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee   User      `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
