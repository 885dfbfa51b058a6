package dto

// StoryCreateDTO 创建/更新故事的请求体，子资源整体提交
type StoryCreateDTO struct {
	Title             string               `json:"title" binding:"required,max=255"`
	Content           string               `json:"content"`
	Description       string               `json:"description" binding:"max=500"`
	Writers           string               `json:"writers" binding:"max=500"`
	TimelineJSON      string               `json:"timelineJson"`
	IsPublished       bool                 `json:"isPublished"`
	ShowSceneTimeline *bool                `json:"showSceneTimeline"`
	Characters        []CharacterCreateDTO `json:"characters" binding:"dive"`
	ImageURLs         []string             `json:"imageUrls"`
	GenreIDs          []uint64             `json:"genreIds"`
}

type StoryDTO struct {
	ID                uint64         `json:"id"`
	Title             string         `json:"title"`
	Content           string         `json:"content"`
	AuthorUsername    string         `json:"authorUsername"`
	AuthorEmail       string         `json:"authorEmail,omitempty"`
	Description       string         `json:"description"`
	Writers           string         `json:"writers"`
	TimelineJSON      string         `json:"timelineJson"`
	IsPublished       bool           `json:"isPublished"`
	LikeCount         int            `json:"likeCount"`
	ViewCount         int            `json:"viewCount"`
	StoryNumber       string         `json:"storyNumber,omitempty"`
	TotalWatchTime    int64          `json:"totalWatchTime"`
	ShowSceneTimeline bool           `json:"showSceneTimeline"`
	CommentCount      int64          `json:"commentCount"`
	IsLiked           bool           `json:"isLiked"`
	IsFavorited       bool           `json:"isFavorited"`
	CreatedAt         string         `json:"createdAt"`
	Characters        []CharacterDTO `json:"characters"`
	ImageURLs         []string       `json:"imageUrls"`
	Genres            []GenreDTO     `json:"genres"`
}

type StoryListDTO struct {
	List    []*StoryDTO `json:"list"`
	HasMore bool        `json:"hasMore"`
}

type PublishDTO struct {
	IsPublished bool `json:"isPublished"`
}

// WatchTimeDTO 上报一次播放时长，单位秒
type WatchTimeDTO struct {
	Seconds int64 `json:"seconds" binding:"required"`
}
