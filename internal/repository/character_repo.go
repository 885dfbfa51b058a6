package repository

import (
	"context"
	"storyapp/internal/model"

	"gorm.io/gorm"
)

type CharacterRepo interface {
	CreateCharacter(ctx context.Context, character *model.Character) error
	GetCharacter(ctx context.Context, id uint64) (*model.Character, error)
	UpdateCharacter(ctx context.Context, character *model.Character) error
	DeleteCharacter(ctx context.Context, id uint64) error
	GetCharactersByAuthor(ctx context.Context, username string) ([]*model.Character, error)
}

type CharacterRepoImpl struct {
	db *gorm.DB
}

func NewCharacterRepo(db *gorm.DB) CharacterRepo {
	return &CharacterRepoImpl{db}
}

func (s *CharacterRepoImpl) CreateCharacter(ctx context.Context, character *model.Character) error {
	return s.db.WithContext(ctx).Create(character).Error
}

func (s *CharacterRepoImpl) GetCharacter(ctx context.Context, id uint64) (*model.Character, error) {
	var character model.Character
	err := s.db.WithContext(ctx).First(&character, id).Error
	if err != nil {
		return nil, err
	}
	return &character, nil
}

func (s *CharacterRepoImpl) UpdateCharacter(ctx context.Context, character *model.Character) error {
	return s.db.WithContext(ctx).Model(&model.Character{}).
		Where("id = ?", character.ID).
		Select("name", "description", "role", "actor_name", "popularity", "image_urls").
		Updates(character).Error
}

func (s *CharacterRepoImpl) DeleteCharacter(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Character{}, id).Error
}

// GetCharactersByAuthor 经 stories 表关联取出某作者所有故事里的角色
func (s *CharacterRepoImpl) GetCharactersByAuthor(ctx context.Context, username string) ([]*model.Character, error) {
	var characters []*model.Character
	err := s.db.WithContext(ctx).Model(&model.Character{}).
		Joins("JOIN stories ON characters.story_id = stories.id").
		Where("stories.author_username = ?", username).
		Order("characters.id ASC").
		Find(&characters).Error
	return characters, err
}
