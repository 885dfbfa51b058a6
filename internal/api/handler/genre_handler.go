package handler

import (
	"storyapp/internal/pkg/response"
	"storyapp/internal/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	genreSvc service.GenreService
}

func NewGenreHandler(genreSvc service.GenreService) *GenreHandler {
	return &GenreHandler{
		genreSvc: genreSvc,
	}
}

func (s *GenreHandler) ListGenres(c *gin.Context) {
	genres, err := s.genreSvc.GetGenres(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, genres)
}
