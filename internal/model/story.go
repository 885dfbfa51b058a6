package model

import (
	"time"
)

type Story struct {
	ID                uint64    `gorm:"primaryKey"`
	Title             string    `gorm:"type:varchar(255);not null" json:"title"`
	Content           string    `gorm:"type:text" json:"content"`
	AuthorUsername    string    `gorm:"type:varchar(255);not null;index:idx_author_username" json:"author_username"`
	Description       string    `gorm:"type:varchar(500)" json:"description"`
	Writers           string    `gorm:"type:varchar(500)" json:"writers"`
	TimelineJSON      string    `gorm:"column:timeline_json;type:text" json:"timeline_json"` // opaque blob, never parsed server-side
	IsPublished       bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_published"`
	LikeCount         int       `gorm:"not null;default:0" json:"like_count"`
	ViewCount         int       `gorm:"not null;default:0" json:"view_count"`
	StoryNumber       *string   `gorm:"type:varchar(20);uniqueIndex:uk_story_number" json:"story_number"` // nil until assigned
	TotalWatchTime    int64     `gorm:"not null;default:0" json:"total_watch_time"`                       // seconds
	ShowSceneTimeline bool      `gorm:"type:tinyint(1);not null;default:1" json:"show_scene_timeline"`
	CreatedAt         time.Time `json:"created_at"`

	Characters []Character  `gorm:"foreignKey:StoryID"`
	Images     []StoryImage `gorm:"foreignKey:StoryID"`
	Genres     []StoryGenre `gorm:"foreignKey:StoryID"`
}

func (Story) TableName() string {
	return "stories"
}
