package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a reply attached to a story.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserLogin string    `gorm:"size:50;index;not null" json:"-"`
	StoryID   uint      `gorm:"index;not null" json:"-"`
	User      User      `gorm:"foreignKey:UserLogin;references:Login;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user"`
	Story     Story     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"story"`
}

// TableName keeps the singular table name used by the schema.
func (Comment) TableName() string { return "comment" }

// AfterFind fills the references from the stored keys when the referenced row was not preloaded.
func (c *Comment) AfterFind(tx *gorm.DB) error {
	if c.User.Login == "" {
		c.User.Login = c.UserLogin
	}
	if c.Story.ID == 0 {
		c.Story.ID = c.StoryID
	}
	return nil
}
