package repository

import (
	"context"
	"storyapp/internal/model"
	"storyapp/internal/pkg/database"
	"time"

	"gorm.io/gorm"
)

type EngagementRepo interface {
	AddLike(ctx context.Context, storyID uint64, username string) (bool, error)
	RemoveLike(ctx context.Context, storyID uint64, username string) (bool, error)
	CheckLikeExists(ctx context.Context, storyID uint64, username string) (bool, error)

	AddFavorite(ctx context.Context, storyID uint64, username string) (bool, error)
	RemoveFavorite(ctx context.Context, storyID uint64, username string) (bool, error)
	CheckFavoriteExists(ctx context.Context, storyID uint64, username string) (bool, error)
	GetFavoriteStoryIDs(ctx context.Context, username string) ([]uint64, error)

	RecordView(ctx context.Context, storyID uint64, username string, now time.Time) (bool, error)

	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	DeleteComment(ctx context.Context, commentID uint64) error
	GetCommentsByStoryID(ctx context.Context, storyID uint64, limit, offset int) ([]*model.Comment, error)
	CountComments(ctx context.Context, storyID uint64) (int64, error)

	CountLikes(ctx context.Context, storyID uint64) (int64, error)
	CountViews(ctx context.Context, storyID uint64) (int64, error)
}

type EngagementRepoImpl struct {
	db *gorm.DB
}

func NewEngagementRepo(db *gorm.DB) EngagementRepo {
	return &EngagementRepoImpl{db}
}

// AddLike 插入点赞行并同步加一聚合计数。
// 唯一索引兜底去重：重复点赞返回 false 且不改计数。
func (s *EngagementRepoImpl) AddLike(ctx context.Context, storyID uint64, username string) (bool, error) {
	first := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.Like{StoryID: storyID, Username: username}).Error; err != nil {
			if database.IsDuplicateKey(err) {
				return nil
			}
			return err
		}
		first = true
		return tx.Model(&model.Story{}).Where("id = ?", storyID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	return first, err
}

// RemoveLike 删除点赞行并同步减一聚合计数，计数不落到负数。
// 没有可删的行时返回 false 且不改计数。
func (s *EngagementRepoImpl) RemoveLike(ctx context.Context, storyID uint64, username string) (bool, error) {
	removed := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("story_id = ? AND username = ?", storyID, username).Delete(&model.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removed = true
		return tx.Model(&model.Story{}).Where("id = ?", storyID).
			UpdateColumn("like_count", gorm.Expr("GREATEST(like_count - 1, 0)")).Error
	})
	return removed, err
}

func (s *EngagementRepoImpl) CheckLikeExists(ctx context.Context, storyID uint64, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("story_id = ? AND username = ?", storyID, username).
		Count(&count).Error
	return count > 0, err
}

func (s *EngagementRepoImpl) AddFavorite(ctx context.Context, storyID uint64, username string) (bool, error) {
	err := s.db.WithContext(ctx).Create(&model.Favorite{StoryID: storyID, Username: username}).Error
	if err != nil {
		if database.IsDuplicateKey(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *EngagementRepoImpl) RemoveFavorite(ctx context.Context, storyID uint64, username string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("story_id = ? AND username = ?", storyID, username).
		Delete(&model.Favorite{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *EngagementRepoImpl) CheckFavoriteExists(ctx context.Context, storyID uint64, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("story_id = ? AND username = ?", storyID, username).
		Count(&count).Error
	return count > 0, err
}

func (s *EngagementRepoImpl) GetFavoriteStoryIDs(ctx context.Context, username string) ([]uint64, error) {
	var storyIDs []uint64
	err := s.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("username = ?", username).
		Order("created_at DESC").
		Pluck("story_id", &storyIDs).Error
	return storyIDs, err
}

// RecordView 记录一次浏览。每个 (story, username) 只有一行：
// 首次浏览插入新行并给故事聚合计数加一，返回 true；
// 撞唯一索引说明看过了，只刷新 last_viewed_at 和该观众的 view_count。
func (s *EngagementRepoImpl) RecordView(ctx context.Context, storyID uint64, username string, now time.Time) (bool, error) {
	first := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		view := &model.StoryView{StoryID: storyID, Username: username, LastViewedAt: now}
		if err := tx.Create(view).Error; err != nil {
			if database.IsDuplicateKey(err) {
				return tx.Model(&model.StoryView{}).
					Where("story_id = ? AND username = ?", storyID, username).
					UpdateColumns(map[string]interface{}{
						"last_viewed_at": now,
						"view_count":     gorm.Expr("view_count + 1"),
					}).Error
			}
			return err
		}
		first = true
		return tx.Model(&model.Story{}).Where("id = ?", storyID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	})
	return first, err
}

func (s *EngagementRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *EngagementRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	var comment model.Comment
	err := s.db.WithContext(ctx).First(&comment, commentID).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *EngagementRepoImpl) DeleteComment(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Comment{}, commentID).Error
}

// GetCommentsByStoryID 分页获取故事评论，新的在前
func (s *EngagementRepoImpl) GetCommentsByStoryID(ctx context.Context, storyID uint64, limit, offset int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := s.db.WithContext(ctx).
		Where("story_id = ?", storyID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&comments).Error
	return comments, err
}

func (s *EngagementRepoImpl) CountComments(ctx context.Context, storyID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("story_id = ?", storyID).
		Count(&count).Error
	return count, err
}

func (s *EngagementRepoImpl) CountLikes(ctx context.Context, storyID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Like{}).
		Where("story_id = ?", storyID).
		Count(&count).Error
	return count, err
}

func (s *EngagementRepoImpl) CountViews(ctx context.Context, storyID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.StoryView{}).
		Where("story_id = ?", storyID).
		Count(&count).Error
	return count, err
}
