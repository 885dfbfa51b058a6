package consts

const (
	MimePrefixImage = "image"
	MimePrefixAudio = "audio"
	MimePrefixVideo = "video"
)

// 上传类型，决定对象名前缀
const (
	UploadTypeStory     = "story"
	UploadTypeScene     = "scene"
	UploadTypeCharacter = "character"
)
