package models

import "time"

// Reaction is an emoji reaction on a post. The composite unique index
// enforces the single-reaction-per-user rule at the storage level; the
// toggle/overwrite semantics live in the service layer.
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_reactions_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reactions_post_user" json:"user_id"`
	Emoji     string    `gorm:"not null" json:"emoji"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
