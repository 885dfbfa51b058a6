package repository

import (
	"context"
	"storyapp/internal/model"

	"gorm.io/gorm"
)

type StoryRepo interface {
	CreateStory(ctx context.Context, story *model.Story, characters []*model.Character, images []*model.StoryImage, genres []*model.StoryGenre) error
	GetStory(ctx context.Context, id uint64) (*model.Story, error)
	GetStoriesByIds(ctx context.Context, ids []uint64) ([]*model.Story, error)
	GetPublishedStories(ctx context.Context, limit, offset int) ([]*model.Story, error)
	GetStoriesByAuthor(ctx context.Context, username string, limit, offset int) ([]*model.Story, error)
	FindByTitleForAuthor(ctx context.Context, title, username string, excludeID uint64) (*model.Story, error)
	UpdateStory(ctx context.Context, story *model.Story, characters []*model.Character, images []*model.StoryImage, genres []*model.StoryGenre) error
	DeleteStory(ctx context.Context, id uint64) error
	UpdatePublished(ctx context.Context, id uint64, published bool) error
	AddWatchTime(ctx context.Context, id uint64, seconds int64) error

	GetStoryNumbersDesc(ctx context.Context) ([]string, error)
	GetStoriesWithoutNumber(ctx context.Context) ([]*model.Story, error)
	UpdateStoryNumber(ctx context.Context, id uint64, number string) error
	UpdateStoryCounts(ctx context.Context, id uint64, likeCount, viewCount int64) error
}

type StoryRepoImpl struct {
	db *gorm.DB
}

func NewStoryRepository(db *gorm.DB) StoryRepo {
	return &StoryRepoImpl{
		db: db,
	}
}

func (s *StoryRepoImpl) CreateStory(ctx context.Context, story *model.Story, characters []*model.Character, images []*model.StoryImage, genres []*model.StoryGenre) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(story).Error; err != nil {
			return err
		}
		if len(characters) > 0 {
			for _, c := range characters {
				c.StoryID = &story.ID
			}
			if err := tx.Create(characters).Error; err != nil {
				return err
			}
		}
		if len(images) > 0 {
			for _, img := range images {
				img.StoryID = story.ID
			}
			if err := tx.Create(images).Error; err != nil {
				return err
			}
		}
		if len(genres) > 0 {
			for _, g := range genres {
				g.StoryID = story.ID
			}
			if err := tx.Create(genres).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *StoryRepoImpl) GetStory(ctx context.Context, id uint64) (*model.Story, error) {
	var story model.Story
	err := s.db.WithContext(ctx).
		Preload("Characters").
		Preload("Images").
		Preload("Genres.Genre").
		First(&story, id).Error
	if err != nil {
		return nil, err
	}
	return &story, nil
}

func (s *StoryRepoImpl) GetStoriesByIds(ctx context.Context, ids []uint64) ([]*model.Story, error) {
	var stories []*model.Story
	err := s.db.WithContext(ctx).
		Preload("Characters").
		Preload("Images").
		Preload("Genres.Genre").
		Where("id IN ?", ids).
		Find(&stories).Error
	if err != nil {
		return nil, err
	}
	return stories, nil
}

func (s *StoryRepoImpl) GetPublishedStories(ctx context.Context, limit, offset int) ([]*model.Story, error) {
	var stories []*model.Story
	err := s.db.WithContext(ctx).
		Preload("Characters").
		Preload("Images").
		Preload("Genres.Genre").
		Where("is_published = ?", true).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&stories).Error
	if err != nil {
		return nil, err
	}
	return stories, nil
}

func (s *StoryRepoImpl) GetStoriesByAuthor(ctx context.Context, username string, limit, offset int) ([]*model.Story, error) {
	var stories []*model.Story
	err := s.db.WithContext(ctx).
		Preload("Characters").
		Preload("Images").
		Preload("Genres.Genre").
		Where("author_username = ?", username).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&stories).Error
	if err != nil {
		return nil, err
	}
	return stories, nil
}

// FindByTitleForAuthor 查同作者下同标题的另一篇故事，excludeID 为 0 时不排除
func (s *StoryRepoImpl) FindByTitleForAuthor(ctx context.Context, title, username string, excludeID uint64) (*model.Story, error) {
	var story model.Story
	query := s.db.WithContext(ctx).
		Where("title = ? AND author_username = ?", title, username)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.First(&story).Error
	if err != nil {
		return nil, err
	}
	return &story, nil
}

// UpdateStory 整体替换：子表先删后插，和主表更新同一事务
func (s *StoryRepoImpl) UpdateStory(ctx context.Context, story *model.Story, characters []*model.Character, images []*model.StoryImage, genres []*model.StoryGenre) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Character{}, "story_id = ?", story.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.StoryImage{}, "story_id = ?", story.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.StoryGenre{}, "story_id = ?", story.ID).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Story{}).Where("id = ?", story.ID).
			Select("title", "content", "description", "writers", "timeline_json", "is_published", "show_scene_timeline").
			Updates(story).Error; err != nil {
			return err
		}
		if len(characters) > 0 {
			for _, c := range characters {
				c.ID = 0
				c.StoryID = &story.ID
			}
			if err := tx.Create(characters).Error; err != nil {
				return err
			}
		}
		if len(images) > 0 {
			for _, img := range images {
				img.ID = 0
				img.StoryID = story.ID
			}
			if err := tx.Create(images).Error; err != nil {
				return err
			}
		}
		if len(genres) > 0 {
			for _, g := range genres {
				g.ID = 0
				g.StoryID = story.ID
			}
			if err := tx.Create(genres).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteStory 硬删除故事和所有关联行
func (s *StoryRepoImpl) DeleteStory(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Character{}, "story_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.StoryImage{}, "story_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.StoryGenre{}, "story_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Comment{}, "story_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Like{}, "story_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Favorite{}, "story_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.StoryView{}, "story_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Story{}, id).Error
	})
}

func (s *StoryRepoImpl) UpdatePublished(ctx context.Context, id uint64, published bool) error {
	return s.db.WithContext(ctx).Model(&model.Story{}).
		Where("id = ?", id).
		Update("is_published", published).Error
}

func (s *StoryRepoImpl) AddWatchTime(ctx context.Context, id uint64, seconds int64) error {
	return s.db.WithContext(ctx).Model(&model.Story{}).
		Where("id = ?", id).
		UpdateColumn("total_watch_time", gorm.Expr("total_watch_time + ?", seconds)).Error
}

// GetStoryNumbersDesc 按数值序返回所有已分配编号，最大在前。
// 编号是纯数字字符串，先比长度再比字典序即数值序。
func (s *StoryRepoImpl) GetStoryNumbersDesc(ctx context.Context) ([]string, error) {
	var numbers []string
	err := s.db.WithContext(ctx).Model(&model.Story{}).
		Where("story_number IS NOT NULL").
		Order("LENGTH(story_number) DESC, story_number DESC").
		Pluck("story_number", &numbers).Error
	return numbers, err
}

func (s *StoryRepoImpl) GetStoriesWithoutNumber(ctx context.Context) ([]*model.Story, error) {
	var stories []*model.Story
	err := s.db.WithContext(ctx).
		Where("story_number IS NULL").
		Order("created_at ASC").
		Find(&stories).Error
	return stories, err
}

func (s *StoryRepoImpl) UpdateStoryNumber(ctx context.Context, id uint64, number string) error {
	return s.db.WithContext(ctx).Model(&model.Story{}).
		Where("id = ?", id).
		Update("story_number", number).Error
}

func (s *StoryRepoImpl) UpdateStoryCounts(ctx context.Context, id uint64, likeCount, viewCount int64) error {
	return s.db.WithContext(ctx).Model(&model.Story{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"like_count": likeCount,
			"view_count": viewCount,
		}).Error
}
