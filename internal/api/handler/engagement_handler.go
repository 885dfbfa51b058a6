package handler

import (
	"storyapp/internal/api/dto"
	"storyapp/internal/pkg/response"
	"storyapp/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	engagementSvc service.EngagementService
}

func NewEngagementHandler(engagementSvc service.EngagementService) *EngagementHandler {
	return &EngagementHandler{
		engagementSvc: engagementSvc,
	}
}

// LikeStory 点赞/取消点赞，按 action 区分
func (s *EngagementHandler) LikeStory(c *gin.Context) {
	storyID, err := strconv.ParseUint(c.Param("story_id"), 10, 64)
	if err != nil || storyID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")

	var story *dto.StoryDTO
	if c.Query("action") == "unlike" {
		story, err = s.engagementSvc.UnlikeStory(c.Request.Context(), storyID, username)
	} else {
		story, err = s.engagementSvc.LikeStory(c.Request.Context(), storyID, username)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, story)
}

// FavoriteStory 收藏/取消收藏
func (s *EngagementHandler) FavoriteStory(c *gin.Context) {
	storyID, err := strconv.ParseUint(c.Param("story_id"), 10, 64)
	if err != nil || storyID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")

	var story *dto.StoryDTO
	if c.Query("action") == "unfavorite" {
		story, err = s.engagementSvc.UnfavoriteStory(c.Request.Context(), storyID, username)
	} else {
		story, err = s.engagementSvc.FavoriteStory(c.Request.Context(), storyID, username)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, story)
}

// TrackWatchTime 上报播放时长
func (s *EngagementHandler) TrackWatchTime(c *gin.Context) {
	storyID, err := strconv.ParseUint(c.Param("story_id"), 10, 64)
	if err != nil || storyID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.WatchTimeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.engagementSvc.TrackWatchTime(c.Request.Context(), storyID, req.Seconds); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *EngagementHandler) AddComment(c *gin.Context) {
	storyID, err := strconv.ParseUint(c.Param("story_id"), 10, 64)
	if err != nil || storyID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")
	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	comment, err := s.engagementSvc.AddComment(c.Request.Context(), storyID, username, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *EngagementHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 64)
	if err != nil || commentID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")
	if err := s.engagementSvc.DeleteComment(c.Request.Context(), commentID, username); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *EngagementHandler) GetComments(c *gin.Context) {
	storyID, err := strconv.ParseUint(c.Param("story_id"), 10, 64)
	if err != nil || storyID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	page, pageSize := parsePage(c)
	comments, err := s.engagementSvc.GetComments(c.Request.Context(), storyID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *EngagementHandler) GetCommentCount(c *gin.Context) {
	storyID, err := strconv.ParseUint(c.Param("story_id"), 10, 64)
	if err != nil || storyID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	count, err := s.engagementSvc.GetCommentCount(c.Request.Context(), storyID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"count": count})
}
