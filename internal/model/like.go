package model

import (
	"time"
)

type Like struct {
	ID        uint64    `gorm:"primaryKey"`
	StoryID   uint64    `gorm:"not null;index:uk_story_username,unique" json:"story_id"`
	Username  string    `gorm:"type:varchar(255);not null;index:uk_story_username,unique" json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}
