package model

import (
	"time"
)

type Comment struct {
	ID        uint64    `gorm:"primaryKey"`
	StoryID   uint64    `gorm:"not null;index:idx_story_id" json:"story_id"`
	Username  string    `gorm:"type:varchar(255);not null" json:"username"`
	Content   string    `gorm:"type:varchar(1000);not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func (Comment) TableName() string {
	return "comments"
}
