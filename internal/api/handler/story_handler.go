package handler

import (
	"storyapp/internal/api/dto"
	"storyapp/internal/pkg/response"
	"storyapp/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StoryHandler struct {
	storySvc      service.StoryService
	engagementSvc service.EngagementService
}

func NewStoryHandler(storySvc service.StoryService, engagementSvc service.EngagementService) *StoryHandler {
	return &StoryHandler{
		storySvc:      storySvc,
		engagementSvc: engagementSvc,
	}
}

// CreateStory 创建故事，角色、配图、题材整体提交
func (s *StoryHandler) CreateStory(c *gin.Context) {
	username := c.GetString("username")
	var req dto.StoryCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	story, err := s.storySvc.CreateStory(c.Request.Context(), username, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, story)
}

// GetStory 故事详情。登录用户顺带记一次浏览。
func (s *StoryHandler) GetStory(c *gin.Context) {
	storyID, err := strconv.ParseUint(c.Param("story_id"), 10, 64)
	if err != nil || storyID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")

	if err := s.engagementSvc.RecordView(c.Request.Context(), storyID, username); err != nil {
		response.Error(c, err)
		return
	}

	story, err := s.storySvc.GetStory(c.Request.Context(), storyID, username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, story)
}

func (s *StoryHandler) UpdateStory(c *gin.Context) {
	storyID, err := strconv.ParseUint(c.Param("story_id"), 10, 64)
	if err != nil || storyID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")
	var req dto.StoryCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	story, err := s.storySvc.UpdateStory(c.Request.Context(), storyID, username, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, story)
}

func (s *StoryHandler) DeleteStory(c *gin.Context) {
	storyID, err := strconv.ParseUint(c.Param("story_id"), 10, 64)
	if err != nil || storyID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")
	if err := s.storySvc.DeleteStory(c.Request.Context(), storyID, username); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// SetPublished 上架/下架
func (s *StoryHandler) SetPublished(c *gin.Context) {
	storyID, err := strconv.ParseUint(c.Param("story_id"), 10, 64)
	if err != nil || storyID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")
	var req dto.PublishDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	story, err := s.storySvc.SetPublished(c.Request.Context(), storyID, username, req.IsPublished)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, story)
}

func (s *StoryHandler) ListPublished(c *gin.Context) {
	username := c.GetString("username")
	page, pageSize := parsePage(c)
	list, err := s.storySvc.ListPublished(c.Request.Context(), username, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *StoryHandler) ListMine(c *gin.Context) {
	username := c.GetString("username")
	page, pageSize := parsePage(c)
	list, err := s.storySvc.ListMine(c.Request.Context(), username, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *StoryHandler) ListFavorites(c *gin.Context) {
	username := c.GetString("username")
	list, err := s.storySvc.ListFavorites(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func parsePage(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
