package repository

import (
	"context"
	"storyapp/internal/model"

	"gorm.io/gorm"
)

type GenreRepo interface {
	GetAll(ctx context.Context) ([]*model.Genre, error)
	GetByIds(ctx context.Context, ids []uint64) ([]*model.Genre, error)
}

type GenreRepoImpl struct {
	db *gorm.DB
}

func NewGenreRepo(db *gorm.DB) GenreRepo {
	return &GenreRepoImpl{db}
}

func (s *GenreRepoImpl) GetAll(ctx context.Context) ([]*model.Genre, error) {
	var genres []*model.Genre
	err := s.db.WithContext(ctx).Order("name ASC").Find(&genres).Error
	return genres, err
}

func (s *GenreRepoImpl) GetByIds(ctx context.Context, ids []uint64) ([]*model.Genre, error) {
	var genres []*model.Genre
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&genres).Error
	return genres, err
}
