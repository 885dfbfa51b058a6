package model

type StoryGenre struct {
	ID      uint64 `gorm:"primaryKey"`
	StoryID uint64 `gorm:"not null;index:uk_story_genre,unique" json:"story_id"`
	GenreID uint64 `gorm:"not null;index:uk_story_genre,unique" json:"genre_id"`

	Genre Genre `gorm:"foreignKey:GenreID;references:ID"`
}

func (StoryGenre) TableName() string {
	return "story_genres"
}
