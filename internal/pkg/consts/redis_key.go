package consts

const (
	StoryDirtyKey      = "story:dirty"
	StoryCommentKey    = "story:comment:"
	GenreListKey       = "genre:list"
	NumberBackfillLock = "lock:story:number:backfill"
)
