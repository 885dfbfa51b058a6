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
	"strconv"
	"time"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type EngagementService interface {
	LikeStory(ctx context.Context, storyID uint64, username string) (*dto.StoryDTO, error)
	UnlikeStory(ctx context.Context, storyID uint64, username string) (*dto.StoryDTO, error)
	FavoriteStory(ctx context.Context, storyID uint64, username string) (*dto.StoryDTO, error)
	UnfavoriteStory(ctx context.Context, storyID uint64, username string) (*dto.StoryDTO, error)

	RecordView(ctx context.Context, storyID uint64, username string) error
	TrackWatchTime(ctx context.Context, storyID uint64, seconds int64) error

	AddComment(ctx context.Context, storyID uint64, username string, req *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, commentID uint64, username string) error
	GetComments(ctx context.Context, storyID uint64, page, pageSize int) ([]*dto.CommentDTO, error)
	GetCommentCount(ctx context.Context, storyID uint64) (int64, error)
}

type engagementServiceImpl struct {
	engagementRepo repository.EngagementRepo
	storyRepo      repository.StoryRepo
	assembler      *StoryAssembler
}

func NewEngagementService(
	engagementRepo repository.EngagementRepo,
	storyRepo repository.StoryRepo,
	assembler *StoryAssembler,
) EngagementService {
	return &engagementServiceImpl{
		engagementRepo: engagementRepo,
		storyRepo:      storyRepo,
		assembler:      assembler,
	}
}

// LikeStory 点赞。重复点赞是无害操作，照样返回当前状态。
func (s *engagementServiceImpl) LikeStory(ctx context.Context, storyID uint64, username string) (*dto.StoryDTO, error) {
	if _, err := s.getStoryCheck(ctx, storyID); err != nil {
		return nil, err
	}
	first, err := s.engagementRepo.AddLike(ctx, storyID, username)
	if err != nil {
		return nil, err
	}
	if first {
		s.markDirty(storyID)
	}
	return s.reload(ctx, storyID, username)
}

func (s *engagementServiceImpl) UnlikeStory(ctx context.Context, storyID uint64, username string) (*dto.StoryDTO, error) {
	if _, err := s.getStoryCheck(ctx, storyID); err != nil {
		return nil, err
	}
	removed, err := s.engagementRepo.RemoveLike(ctx, storyID, username)
	if err != nil {
		return nil, err
	}
	if removed {
		s.markDirty(storyID)
	}
	return s.reload(ctx, storyID, username)
}

func (s *engagementServiceImpl) FavoriteStory(ctx context.Context, storyID uint64, username string) (*dto.StoryDTO, error) {
	if _, err := s.getStoryCheck(ctx, storyID); err != nil {
		return nil, err
	}
	if _, err := s.engagementRepo.AddFavorite(ctx, storyID, username); err != nil {
		return nil, err
	}
	return s.reload(ctx, storyID, username)
}

func (s *engagementServiceImpl) UnfavoriteStory(ctx context.Context, storyID uint64, username string) (*dto.StoryDTO, error) {
	if _, err := s.getStoryCheck(ctx, storyID); err != nil {
		return nil, err
	}
	if _, err := s.engagementRepo.RemoveFavorite(ctx, storyID, username); err != nil {
		return nil, err
	}
	return s.reload(ctx, storyID, username)
}

// RecordView 记录浏览。匿名浏览不计数也不建行。
func (s *engagementServiceImpl) RecordView(ctx context.Context, storyID uint64, username string) error {
	if username == "" {
		return nil
	}
	if _, err := s.getStoryCheck(ctx, storyID); err != nil {
		return err
	}
	first, err := s.engagementRepo.RecordView(ctx, storyID, username, time.Now())
	if err != nil {
		return err
	}
	if first {
		s.markDirty(storyID)
	}
	return nil
}

func (s *engagementServiceImpl) TrackWatchTime(ctx context.Context, storyID uint64, seconds int64) error {
	if seconds <= 0 {
		return ErrWatchTimeInvalid
	}
	if _, err := s.getStoryCheck(ctx, storyID); err != nil {
		return err
	}
	return s.storyRepo.AddWatchTime(ctx, storyID, seconds)
}

func (s *engagementServiceImpl) AddComment(ctx context.Context, storyID uint64, username string, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	if _, err := s.getStoryCheck(ctx, storyID); err != nil {
		return nil, err
	}
	comment := &model.Comment{
		StoryID:   storyID,
		Username:  username,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := s.engagementRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	s.invalidateCommentCount(ctx, storyID)
	return convertToCommentDTO(comment), nil
}

func (s *engagementServiceImpl) DeleteComment(ctx context.Context, commentID uint64, username string) error {
	comment, err := s.engagementRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.Username != username {
		return UnauthorizedError
	}
	if err := s.engagementRepo.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	s.invalidateCommentCount(ctx, comment.StoryID)
	return nil
}

func (s *engagementServiceImpl) GetComments(ctx context.Context, storyID uint64, page, pageSize int) ([]*dto.CommentDTO, error) {
	comments, err := s.engagementRepo.GetCommentsByStoryID(ctx, storyID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.CommentDTO, 0, len(comments))
	for _, c := range comments {
		res = append(res, convertToCommentDTO(c))
	}
	return res, nil
}

func (s *engagementServiceImpl) GetCommentCount(ctx context.Context, storyID uint64) (int64, error) {
	return s.assembler.commentCount(ctx, storyID)
}

func (s *engagementServiceImpl) getStoryCheck(ctx context.Context, storyID uint64) (*model.Story, error) {
	story, err := s.storyRepo.GetStory(ctx, storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	return story, nil
}

func (s *engagementServiceImpl) reload(ctx context.Context, storyID uint64, username string) (*dto.StoryDTO, error) {
	story, err := s.storyRepo.GetStory(ctx, storyID)
	if err != nil {
		return nil, err
	}
	return s.assembler.Assemble(ctx, story, username)
}

// markDirty 把故事塞进脏集合，等对账任务核对聚合计数
func (s *engagementServiceImpl) markDirty(storyID uint64) {
	if err := redis.SAdd(context.Background(), consts.StoryDirtyKey, storyID); err != nil {
		log.Warn("failed to mark story dirty", "storyID", storyID, "err", err)
	}
}

func (s *engagementServiceImpl) invalidateCommentCount(ctx context.Context, storyID uint64) {
	key := consts.StoryCommentKey + strconv.FormatUint(storyID, 10)
	if err := redis.DeleteKey(ctx, key); err != nil {
		log.Warn("failed to invalidate comment count cache", "storyID", storyID, "err", err)
	}
}

func convertToCommentDTO(comment *model.Comment) *dto.CommentDTO {
	item := &dto.CommentDTO{}
	_ = copier.Copy(item, comment)
	item.CreatedAt = comment.CreatedAt.Format("2006-01-02 15:04:05")
	return item
}
