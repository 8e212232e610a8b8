package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxPostContentLen is the maximum length of post content in characters.
const MaxPostContentLen = 2000

// Post is a piece of user content. Comments and reactions live in their own
// tables and are preloaded with their authors when a post is returned.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`
	Image   string `gorm:"default:''" json:"image"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"-" json:"comments_count"`
	// ReactionsCount is not persisted; computed at query time
	ReactionsCount int            `gorm:"-" json:"reactions_count"`
	Comments       []Comment      `gorm:"foreignKey:PostID" json:"comments"`
	Reactions      []Reaction     `gorm:"foreignKey:PostID" json:"reactions"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
