package model

type StoryImage struct {
	ID      uint64 `gorm:"primaryKey"`
	StoryID uint64 `gorm:"not null;index:idx_story_id" json:"story_id"`
	URL     string `gorm:"type:varchar(512);not null" json:"url"`
}

func (StoryImage) TableName() string {
	return "story_images"
}
