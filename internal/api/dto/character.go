package dto

type CharacterCreateDTO struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Description string   `json:"description"`
	Role        string   `json:"role" binding:"max=255"`
	ActorName   string   `json:"actorName" binding:"max=255"`
	Popularity  int      `json:"popularity"`
	ImageURLs   []string `json:"imageUrls"`
}

type CharacterDTO struct {
	ID          uint64   `json:"id"`
	StoryID     *uint64  `json:"storyId"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Role        string   `json:"role"`
	ActorName   string   `json:"actorName"`
	Popularity  int      `json:"popularity"`
	ImageURLs   []string `json:"imageUrls"`
}
