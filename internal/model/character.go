package model

type Character struct {
	ID          uint64   `gorm:"primaryKey"`
	StoryID     *uint64  `gorm:"index:uk_story_name,unique" json:"story_id"` // nil for standalone characters not yet attached
	Name        string   `gorm:"type:varchar(255);not null;index:uk_story_name,unique" json:"name"`
	Description string   `gorm:"type:text" json:"description"`
	Role        string   `gorm:"type:varchar(255)" json:"role"`
	ActorName   string   `gorm:"type:varchar(255)" json:"actor_name"`
	Popularity  int      `gorm:"not null;default:5" json:"popularity"`
	ImageURLs   []string `gorm:"type:json;serializer:json" json:"image_urls"`
}

func (Character) TableName() string {
	return "characters"
}
