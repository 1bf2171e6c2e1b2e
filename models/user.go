package models

import "time"

// User is the author of a comment. Only the login is referenced by comments.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id,omitempty"`
	Login     string    `gorm:"size:50;uniqueIndex;not null" json:"login"`
	CreatedAt time.Time `json:"-"`
}

func (User) TableName() string { return "user" }
