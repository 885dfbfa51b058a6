package model

type Genre struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex:uk_genre_name" json:"name"`
	Description string `gorm:"type:varchar(500)" json:"description"`
}

func (Genre) TableName() string {
	return "genres"
}
