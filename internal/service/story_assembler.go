package service

import (
	"context"
	"storyapp/internal/api/dto"
	"storyapp/internal/model"
	"storyapp/internal/pkg/consts"
	"storyapp/internal/pkg/redis"
	"storyapp/internal/repository"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

const cacheExpiration = 7 * 24 * time.Hour

// StoryAssembler projects a Story row plus its viewer-dependent
// engagement state into the response shape. The per-viewer lookups,
// comment count and author email fan out concurrently; the email
// lookup is best effort and never fails the projection.
type StoryAssembler struct {
	engagementRepo repository.EngagementRepo
	userClient     UserClient
}

func NewStoryAssembler(engagementRepo repository.EngagementRepo, userClient UserClient) *StoryAssembler {
	return &StoryAssembler{
		engagementRepo: engagementRepo,
		userClient:     userClient,
	}
}

// Assemble builds a StoryDTO for the given viewer. An empty username
// means anonymous: isLiked and isFavorited come back false.
func (s *StoryAssembler) Assemble(ctx context.Context, story *model.Story, viewer string) (*dto.StoryDTO, error) {
	item := s.convert(story)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.commentCount(gctx, story.ID)
		if err != nil {
			return err
		}
		item.CommentCount = count
		return nil
	})

	if viewer != "" {
		g.Go(func() error {
			liked, err := s.engagementRepo.CheckLikeExists(gctx, story.ID, viewer)
			if err != nil {
				return err
			}
			item.IsLiked = liked
			return nil
		})
		g.Go(func() error {
			favorited, err := s.engagementRepo.CheckFavoriteExists(gctx, story.ID, viewer)
			if err != nil {
				return err
			}
			item.IsFavorited = favorited
			return nil
		})
	}

	g.Go(func() error {
		item.AuthorEmail = s.userClient.GetUserEmail(gctx, story.AuthorUsername)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return item, nil
}

// AssembleList projects a page of stories, fanning out per story.
func (s *StoryAssembler) AssembleList(ctx context.Context, stories []*model.Story, viewer string) ([]*dto.StoryDTO, error) {
	list := make([]*dto.StoryDTO, len(stories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, story := range stories {
		g.Go(func() error {
			item, err := s.Assemble(gctx, story, viewer)
			if err != nil {
				return err
			}
			list[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *StoryAssembler) convert(story *model.Story) *dto.StoryDTO {
	item := &dto.StoryDTO{}
	_ = copier.Copy(item, story)

	if story.StoryNumber != nil {
		item.StoryNumber = *story.StoryNumber
	}
	item.CreatedAt = story.CreatedAt.Format("2006-01-02 15:04:05")

	item.Characters = make([]dto.CharacterDTO, 0, len(story.Characters))
	for _, c := range story.Characters {
		cd := dto.CharacterDTO{}
		_ = copier.Copy(&cd, &c)
		item.Characters = append(item.Characters, cd)
	}

	item.ImageURLs = make([]string, 0, len(story.Images))
	for _, img := range story.Images {
		item.ImageURLs = append(item.ImageURLs, img.URL)
	}

	item.Genres = make([]dto.GenreDTO, 0, len(story.Genres))
	for _, sg := range story.Genres {
		if sg.Genre.ID == 0 {
			continue
		}
		item.Genres = append(item.Genres, dto.GenreDTO{
			ID:          sg.Genre.ID,
			Name:        sg.Genre.Name,
			Description: sg.Genre.Description,
		})
	}
	return item
}

func (s *StoryAssembler) commentCount(ctx context.Context, storyID uint64) (int64, error) {
	key := consts.StoryCommentKey + strconv.FormatUint(storyID, 10)
	count, err := redis.GetInt64(ctx, key)
	if err == nil {
		return count, nil
	}
	realCount, err := s.engagementRepo.CountComments(ctx, storyID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetWithExpiration(ctx, key, realCount, cacheExpiration)
	return realCount, nil
}
