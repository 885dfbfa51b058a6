package handler

import (
	"storyapp/internal/api/dto"
	"storyapp/internal/pkg/response"
	"storyapp/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CharacterHandler struct {
	characterSvc service.CharacterService
}

func NewCharacterHandler(characterSvc service.CharacterService) *CharacterHandler {
	return &CharacterHandler{
		characterSvc: characterSvc,
	}
}

func (s *CharacterHandler) CreateCharacter(c *gin.Context) {
	storyID, err := strconv.ParseUint(c.Param("story_id"), 10, 64)
	if err != nil || storyID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")
	var req dto.CharacterCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	character, err := s.characterSvc.CreateCharacter(c.Request.Context(), storyID, username, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, character)
}

func (s *CharacterHandler) GetCharacter(c *gin.Context) {
	characterID, err := strconv.ParseUint(c.Param("character_id"), 10, 64)
	if err != nil || characterID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	character, err := s.characterSvc.GetCharacter(c.Request.Context(), characterID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, character)
}

func (s *CharacterHandler) UpdateCharacter(c *gin.Context) {
	characterID, err := strconv.ParseUint(c.Param("character_id"), 10, 64)
	if err != nil || characterID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")
	var req dto.CharacterCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	character, err := s.characterSvc.UpdateCharacter(c.Request.Context(), characterID, username, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, character)
}

func (s *CharacterHandler) DeleteCharacter(c *gin.Context) {
	characterID, err := strconv.ParseUint(c.Param("character_id"), 10, 64)
	if err != nil || characterID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	username := c.GetString("username")
	if err := s.characterSvc.DeleteCharacter(c.Request.Context(), characterID, username); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *CharacterHandler) ListMyCharacters(c *gin.Context) {
	username := c.GetString("username")
	characters, err := s.characterSvc.GetMyCharacters(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, characters)
}
