package service

import (
	"context"
	"errors"
	log "log/slog"
	"storyapp/internal/api/dto"
	"storyapp/internal/model"
	"storyapp/internal/pkg/consts"
	"storyapp/internal/pkg/redis"
	"storyapp/internal/repository"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StoryService interface {
	CreateStory(ctx context.Context, username string, req *dto.StoryCreateDTO) (*dto.StoryDTO, error)
	GetStory(ctx context.Context, storyID uint64, viewer string) (*dto.StoryDTO, error)
	UpdateStory(ctx context.Context, storyID uint64, username string, req *dto.StoryCreateDTO) (*dto.StoryDTO, error)
	DeleteStory(ctx context.Context, storyID uint64, username string) error
	SetPublished(ctx context.Context, storyID uint64, username string, published bool) (*dto.StoryDTO, error)

	ListPublished(ctx context.Context, viewer string, page, pageSize int) (*dto.StoryListDTO, error)
	ListMine(ctx context.Context, username string, page, pageSize int) (*dto.StoryListDTO, error)
	ListFavorites(ctx context.Context, username string) (*dto.StoryListDTO, error)
}

type storyServiceImpl struct {
	storyRepo      repository.StoryRepo
	engagementRepo repository.EngagementRepo
	genreRepo      repository.GenreRepo
	allocator      *NumberAllocator
	assembler      *StoryAssembler
}

func NewStoryService(
	storyRepo repository.StoryRepo,
	engagementRepo repository.EngagementRepo,
	genreRepo repository.GenreRepo,
	allocator *NumberAllocator,
	assembler *StoryAssembler,
) StoryService {
	return &storyServiceImpl{
		storyRepo:      storyRepo,
		engagementRepo: engagementRepo,
		genreRepo:      genreRepo,
		allocator:      allocator,
		assembler:      assembler,
	}
}

func (s *storyServiceImpl) CreateStory(ctx context.Context, username string, req *dto.StoryCreateDTO) (*dto.StoryDTO, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if err := s.checkTitleFree(ctx, title, username, 0); err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, req.GenreIDs)
	if err != nil {
		return nil, err
	}

	story := &model.Story{
		Title:             title,
		Content:           req.Content,
		AuthorUsername:    username,
		Description:       req.Description,
		Writers:           req.Writers,
		TimelineJSON:      req.TimelineJSON,
		IsPublished:       req.IsPublished,
		ShowSceneTimeline: true,
		CreatedAt:         time.Now(),
	}
	if req.ShowSceneTimeline != nil {
		story.ShowSceneTimeline = *req.ShowSceneTimeline
	}

	characters := convertCharacters(req.Characters)
	images := convertImages(req.ImageURLs)

	if err := s.storyRepo.CreateStory(ctx, story, characters, images, genres); err != nil {
		return nil, err
	}

	if _, err := s.allocator.Assign(ctx, story.ID); err != nil {
		// The story row exists either way. Exhaustion is surfaced so
		// the client knows the number is pending; the hourly backfill
		// picks the story up later.
		log.Error("story number allocation failed", "storyID", story.ID, "err", err)
		return nil, err
	}

	return s.GetStory(ctx, story.ID, username)
}

func (s *storyServiceImpl) GetStory(ctx context.Context, storyID uint64, viewer string) (*dto.StoryDTO, error) {
	story, err := s.storyRepo.GetStory(ctx, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	return s.assembler.Assemble(ctx, story, viewer)
}

func (s *storyServiceImpl) UpdateStory(ctx context.Context, storyID uint64, username string, req *dto.StoryCreateDTO) (*dto.StoryDTO, error) {
	existing, err := s.getOwnedStory(ctx, storyID, username)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if err := s.checkTitleFree(ctx, title, username, storyID); err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, req.GenreIDs)
	if err != nil {
		return nil, err
	}

	story := &model.Story{
		ID:                existing.ID,
		Title:             title,
		Content:           req.Content,
		Description:       req.Description,
		Writers:           req.Writers,
		TimelineJSON:      req.TimelineJSON,
		IsPublished:       req.IsPublished,
		ShowSceneTimeline: existing.ShowSceneTimeline,
	}
	if req.ShowSceneTimeline != nil {
		story.ShowSceneTimeline = *req.ShowSceneTimeline
	}

	characters := convertCharacters(req.Characters)
	images := convertImages(req.ImageURLs)

	if err := s.storyRepo.UpdateStory(ctx, story, characters, images, genres); err != nil {
		return nil, err
	}
	return s.GetStory(ctx, storyID, username)
}

func (s *storyServiceImpl) DeleteStory(ctx context.Context, storyID uint64, username string) error {
	if _, err := s.getOwnedStory(ctx, storyID, username); err != nil {
		return err
	}
	return s.storyRepo.DeleteStory(ctx, storyID)
}

func (s *storyServiceImpl) SetPublished(ctx context.Context, storyID uint64, username string, published bool) (*dto.StoryDTO, error) {
	if _, err := s.getOwnedStory(ctx, storyID, username); err != nil {
		return nil, err
	}
	if err := s.storyRepo.UpdatePublished(ctx, storyID, published); err != nil {
		return nil, err
	}
	return s.GetStory(ctx, storyID, username)
}

func (s *storyServiceImpl) ListPublished(ctx context.Context, viewer string, page, pageSize int) (*dto.StoryListDTO, error) {
	s.ensureNumbers(ctx)
	stories, err := s.storyRepo.GetPublishedStories(ctx, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.expandStoryList(ctx, stories, viewer, pageSize)
}

func (s *storyServiceImpl) ListMine(ctx context.Context, username string, page, pageSize int) (*dto.StoryListDTO, error) {
	s.ensureNumbers(ctx)
	stories, err := s.storyRepo.GetStoriesByAuthor(ctx, username, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return s.expandStoryList(ctx, stories, username, pageSize)
}

func (s *storyServiceImpl) ListFavorites(ctx context.Context, username string) (*dto.StoryListDTO, error) {
	ids, err := s.engagementRepo.GetFavoriteStoryIDs(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &dto.StoryListDTO{List: []*dto.StoryDTO{}}, nil
	}
	stories, err := s.storyRepo.GetStoriesByIds(ctx, ids)
	if err != nil {
		return nil, err
	}
	list, err := s.assembler.AssembleList(ctx, stories, username)
	if err != nil {
		return nil, err
	}
	return &dto.StoryListDTO{List: list}, nil
}

func (s *storyServiceImpl) expandStoryList(ctx context.Context, stories []*model.Story, viewer string, pageSize int) (*dto.StoryListDTO, error) {
	hasMore := len(stories) > pageSize
	if hasMore {
		stories = stories[:pageSize]
	}
	list, err := s.assembler.AssembleList(ctx, stories, viewer)
	if err != nil {
		return nil, err
	}
	return &dto.StoryListDTO{List: list, HasMore: hasMore}, nil
}

func (s *storyServiceImpl) getOwnedStory(ctx context.Context, storyID uint64, username string) (*model.Story, error) {
	story, err := s.storyRepo.GetStory(ctx, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	if story.AuthorUsername != username {
		return nil, UnauthorizedError
	}
	return story, nil
}

func (s *storyServiceImpl) checkTitleFree(ctx context.Context, title, username string, excludeID uint64) error {
	_, err := s.storyRepo.FindByTitleForAuthor(ctx, title, username, excludeID)
	if err == nil {
		return ErrTitleDuplicate
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (s *storyServiceImpl) resolveGenres(ctx context.Context, genreIDs []uint64) ([]*model.StoryGenre, error) {
	if len(genreIDs) == 0 {
		return nil, nil
	}
	found, err := s.genreRepo.GetByIds(ctx, genreIDs)
	if err != nil {
		return nil, err
	}
	if len(found) != len(dedupIDs(genreIDs)) {
		return nil, ErrGenreNotFound
	}
	genres := make([]*model.StoryGenre, 0, len(found))
	for _, g := range found {
		genres = append(genres, &model.StoryGenre{GenreID: g.ID})
	}
	return genres, nil
}

// ensureNumbers 兜底补号。抢不到锁说明别的实例在补，跳过即可。
func (s *storyServiceImpl) ensureNumbers(ctx context.Context) {
	lockValue := uuid.NewString()
	locked, err := redis.TryLock(ctx, consts.NumberBackfillLock, lockValue, time.Minute, 0)
	if err == nil && !locked {
		return
	}
	if err == nil {
		defer redis.UnLock(ctx, consts.NumberBackfillLock, lockValue)
	}
	if _, err := s.allocator.Backfill(ctx); err != nil {
		log.Warn("lazy story number backfill failed", "err", err)
	}
}

func dedupIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	res := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}

func convertCharacters(reqs []dto.CharacterCreateDTO) []*model.Character {
	characters := make([]*model.Character, 0, len(reqs))
	for _, r := range reqs {
		popularity := r.Popularity
		if popularity == 0 {
			popularity = 5
		}
		characters = append(characters, &model.Character{
			Name:        r.Name,
			Description: r.Description,
			Role:        r.Role,
			ActorName:   r.ActorName,
			Popularity:  popularity,
			ImageURLs:   r.ImageURLs,
		})
	}
	return characters
}

func convertImages(urls []string) []*model.StoryImage {
	images := make([]*model.StoryImage, 0, len(urls))
	for _, url := range urls {
		if strings.TrimSpace(url) == "" {
			continue
		}
		images = append(images, &model.StoryImage{URL: url})
	}
	return images
}
