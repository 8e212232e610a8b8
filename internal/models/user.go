// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a user account in Ripple.
//
// Password is empty for accounts created through Google sign-in; GoogleID is
// set only for those accounts (unique, sparse). FollowersCount and
// FollowingCount are derived from the follows table and recomputed inside the
// same transaction as every edge mutation, never incremented in place.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"unique;not null" json:"username"`
	Email          string         `gorm:"unique;not null" json:"email"`
	Password       string         `json:"-"`
	GoogleID       *string        `gorm:"uniqueIndex;default:null" json:"-"`
	Avatar         string         `json:"avatar"`
	Bio            string         `json:"bio"`
	FollowersCount int            `gorm:"not null;default:0" json:"followers_count"`
	FollowingCount int            `gorm:"not null;default:0" json:"following_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	Posts          []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// UserSummary is the public projection of a user embedded in other payloads.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Summary returns the public projection of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}
