package dto

type CommentCreateDTO struct {
	Content string `json:"content" binding:"required,max=1000"`
}

type CommentDTO struct {
	ID        uint64 `json:"id"`
	StoryID   uint64 `json:"storyId"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}
