package service

import (
	"context"
	"errors"
	"storyapp/internal/api/dto"
	"storyapp/internal/model"
	"storyapp/internal/repository"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type CharacterService interface {
	CreateCharacter(ctx context.Context, storyID uint64, username string, req *dto.CharacterCreateDTO) (*dto.CharacterDTO, error)
	GetCharacter(ctx context.Context, characterID uint64) (*dto.CharacterDTO, error)
	UpdateCharacter(ctx context.Context, characterID uint64, username string, req *dto.CharacterCreateDTO) (*dto.CharacterDTO, error)
	DeleteCharacter(ctx context.Context, characterID uint64, username string) error
	GetMyCharacters(ctx context.Context, username string) ([]*dto.CharacterDTO, error)
}

type characterServiceImpl struct {
	characterRepo repository.CharacterRepo
	storyRepo     repository.StoryRepo
}

func NewCharacterService(characterRepo repository.CharacterRepo, storyRepo repository.StoryRepo) CharacterService {
	return &characterServiceImpl{
		characterRepo: characterRepo,
		storyRepo:     storyRepo,
	}
}

func (s *characterServiceImpl) CreateCharacter(ctx context.Context, storyID uint64, username string, req *dto.CharacterCreateDTO) (*dto.CharacterDTO, error) {
	if err := s.checkStoryOwner(ctx, storyID, username); err != nil {
		return nil, err
	}
	popularity := req.Popularity
	if popularity == 0 {
		popularity = 5
	}
	character := &model.Character{
		StoryID:     &storyID,
		Name:        req.Name,
		Description: req.Description,
		Role:        req.Role,
		ActorName:   req.ActorName,
		Popularity:  popularity,
		ImageURLs:   req.ImageURLs,
	}
	if err := s.characterRepo.CreateCharacter(ctx, character); err != nil {
		return nil, err
	}
	return convertToCharacterDTO(character), nil
}

func (s *characterServiceImpl) GetCharacter(ctx context.Context, characterID uint64) (*dto.CharacterDTO, error) {
	character, err := s.characterRepo.GetCharacter(ctx, characterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}
	return convertToCharacterDTO(character), nil
}

func (s *characterServiceImpl) UpdateCharacter(ctx context.Context, characterID uint64, username string, req *dto.CharacterCreateDTO) (*dto.CharacterDTO, error) {
	character, err := s.getOwnedCharacter(ctx, characterID, username)
	if err != nil {
		return nil, err
	}
	character.Name = req.Name
	character.Description = req.Description
	character.Role = req.Role
	character.ActorName = req.ActorName
	if req.Popularity != 0 {
		character.Popularity = req.Popularity
	}
	character.ImageURLs = req.ImageURLs
	if err := s.characterRepo.UpdateCharacter(ctx, character); err != nil {
		return nil, err
	}
	return convertToCharacterDTO(character), nil
}

func (s *characterServiceImpl) DeleteCharacter(ctx context.Context, characterID uint64, username string) error {
	if _, err := s.getOwnedCharacter(ctx, characterID, username); err != nil {
		return err
	}
	return s.characterRepo.DeleteCharacter(ctx, characterID)
}

func (s *characterServiceImpl) GetMyCharacters(ctx context.Context, username string) ([]*dto.CharacterDTO, error) {
	characters, err := s.characterRepo.GetCharactersByAuthor(ctx, username)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.CharacterDTO, 0, len(characters))
	for _, c := range characters {
		res = append(res, convertToCharacterDTO(c))
	}
	return res, nil
}

func (s *characterServiceImpl) checkStoryOwner(ctx context.Context, storyID uint64, username string) error {
	story, err := s.storyRepo.GetStory(ctx, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoryNotFound
		}
		return err
	}
	if story.AuthorUsername != username {
		return UnauthorizedError
	}
	return nil
}

func (s *characterServiceImpl) getOwnedCharacter(ctx context.Context, characterID uint64, username string) (*model.Character, error) {
	character, err := s.characterRepo.GetCharacter(ctx, characterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCharacterNotFound
		}
		return nil, err
	}
	if character.StoryID != nil {
		if err := s.checkStoryOwner(ctx, *character.StoryID, username); err != nil {
			return nil, err
		}
	}
	return character, nil
}

func convertToCharacterDTO(character *model.Character) *dto.CharacterDTO {
	item := &dto.CharacterDTO{}
	_ = copier.Copy(item, character)
	return item
}
