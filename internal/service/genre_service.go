package service

import (
	"context"
	"storyapp/internal/api/dto"
	"storyapp/internal/pkg/consts"
	"storyapp/internal/pkg/redis"
	"storyapp/internal/repository"

	"github.com/goccy/go-json"
)

type GenreService interface {
	GetGenres(ctx context.Context) ([]*dto.GenreDTO, error)
}

type genreServiceImpl struct {
	genreRepo repository.GenreRepo
}

func NewGenreService(genreRepo repository.GenreRepo) GenreService {
	return &genreServiceImpl{genreRepo: genreRepo}
}

// GetGenres 题材表基本只读，整表缓存
func (s *genreServiceImpl) GetGenres(ctx context.Context) ([]*dto.GenreDTO, error) {
	cached, err := redis.GetValue(ctx, consts.GenreListKey)
	if err == nil && cached != "" {
		var res []*dto.GenreDTO
		if err := json.Unmarshal([]byte(cached), &res); err == nil {
			return res, nil
		}
	}

	genres, err := s.genreRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.GenreDTO, 0, len(genres))
	for _, g := range genres {
		res = append(res, &dto.GenreDTO{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
		})
	}

	if data, err := json.Marshal(res); err == nil {
		_ = redis.SetWithExpiration(ctx, consts.GenreListKey, string(data), cacheExpiration)
	}
	return res, nil
}
