package handler

import (
	log "log/slog"
	"path"
	"storyapp/internal/pkg/consts"
	"storyapp/internal/pkg/minio"
	"storyapp/internal/pkg/response"
	"storyapp/internal/pkg/util"
	"storyapp/internal/service"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MediaHandler struct{}

func NewMediaHandler() *MediaHandler {
	return &MediaHandler{}
}

// Upload 上传故事相关的图片素材
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	uploadType := c.DefaultQuery("type", consts.UploadTypeStory)
	switch uploadType {
	case consts.UploadTypeStory, consts.UploadTypeScene, consts.UploadTypeCharacter:
	default:
		response.Error(c, service.ErrParamInvalid)
		return
	}

	ext := path.Ext(file.Filename)
	objectName := uploadType + "/" + time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, reader, file.Size, contentType)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	res := map[string]interface{}{
		"url":      minio.GetPublicURL(fileKey),
		"key":      fileKey,
		"mime":     contentType,
		"size":     file.Size,
		"original": file.Filename,
	}

	log.InfoContext(c.Request.Context(), "media upload success", "fileKey", fileKey, "type", contentType)
	response.Success(c, res)
}

// Delete 删除已上传的素材，只认本服务前缀下的对象
func (s *MediaHandler) Delete(c *gin.Context) {
	key := c.Query("key")
	if key == "" || strings.Contains(key, "..") {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	validPrefix := strings.HasPrefix(key, consts.UploadTypeStory+"/") ||
		strings.HasPrefix(key, consts.UploadTypeScene+"/") ||
		strings.HasPrefix(key, consts.UploadTypeCharacter+"/")
	if !validPrefix {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := minio.DeleteFile(c.Request.Context(), key); err != nil {
		log.ErrorContext(c.Request.Context(), "MinIO delete failed", "key", key, "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}
	response.Success(c, nil)
}
