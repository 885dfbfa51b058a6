package model

import (
	"time"
)

type StoryView struct {
	ID            uint64    `gorm:"primaryKey"`
	StoryID       uint64    `gorm:"not null;index:uk_story_username,unique" json:"story_id"`
	Username      string    `gorm:"type:varchar(255);not null;index:uk_story_username,unique" json:"username"`
	FirstViewedAt time.Time `gorm:"autoCreateTime" json:"first_viewed_at"`
	LastViewedAt  time.Time `json:"last_viewed_at"`
	ViewCount     int       `gorm:"not null;default:1" json:"view_count"` // per-viewer repeat counter, analytics only
}

func (StoryView) TableName() string {
	return "story_views"
}
