package service

import (
	"context"
	"fmt"
	"sort"
	"storyapp/internal/model"
	"strings"
	"time"

	"gorm.io/gorm"
)

// In-memory repository fakes. Unique-index behavior is emulated by
// returning gorm.ErrDuplicatedKey the way the MySQL driver path does.

type fakeStoryRepo struct {
	nextID     uint64
	stories    map[uint64]*model.Story
	genres     map[uint64]*model.Genre // emulates the Genres.Genre preload
	engagement *fakeEngagementRepo     // emulates the delete cascade across tables

	getErr           error   // returned by GetStory when set
	numberUpdateErrs []error // popped per UpdateStoryNumber call when set
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{
		nextID:  0,
		stories: make(map[uint64]*model.Story),
	}
}

func (f *fakeStoryRepo) addStory(story *model.Story) *model.Story {
	f.nextID++
	story.ID = f.nextID
	if story.CreatedAt.IsZero() {
		story.CreatedAt = time.Now()
	}
	f.stories[story.ID] = story
	return story
}

func (f *fakeStoryRepo) CreateStory(ctx context.Context, story *model.Story, characters []*model.Character, images []*model.StoryImage, genres []*model.StoryGenre) error {
	f.addStory(story)
	for _, c := range characters {
		c.StoryID = &story.ID
		story.Characters = append(story.Characters, *c)
	}
	for _, img := range images {
		img.StoryID = story.ID
		story.Images = append(story.Images, *img)
	}
	for _, g := range genres {
		g.StoryID = story.ID
		f.fillGenre(g)
		story.Genres = append(story.Genres, *g)
	}
	return nil
}

func (f *fakeStoryRepo) fillGenre(sg *model.StoryGenre) {
	if g, ok := f.genres[sg.GenreID]; ok {
		sg.Genre = *g
	}
}

func (f *fakeStoryRepo) GetStory(ctx context.Context, id uint64) (*model.Story, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	story, ok := f.stories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return story, nil
}

func (f *fakeStoryRepo) GetStoriesByIds(ctx context.Context, ids []uint64) ([]*model.Story, error) {
	var res []*model.Story
	for _, id := range ids {
		if story, ok := f.stories[id]; ok {
			res = append(res, story)
		}
	}
	return res, nil
}

func (f *fakeStoryRepo) GetPublishedStories(ctx context.Context, limit, offset int) ([]*model.Story, error) {
	var res []*model.Story
	for _, story := range f.sorted() {
		if story.IsPublished {
			res = append(res, story)
		}
	}
	return page(res, limit, offset), nil
}

func (f *fakeStoryRepo) GetStoriesByAuthor(ctx context.Context, username string, limit, offset int) ([]*model.Story, error) {
	var res []*model.Story
	for _, story := range f.sorted() {
		if story.AuthorUsername == username {
			res = append(res, story)
		}
	}
	return page(res, limit, offset), nil
}

func (f *fakeStoryRepo) FindByTitleForAuthor(ctx context.Context, title, username string, excludeID uint64) (*model.Story, error) {
	for _, story := range f.stories {
		if story.Title == title && story.AuthorUsername == username && story.ID != excludeID {
			return story, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeStoryRepo) UpdateStory(ctx context.Context, story *model.Story, characters []*model.Character, images []*model.StoryImage, genres []*model.StoryGenre) error {
	existing, ok := f.stories[story.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.Title = story.Title
	existing.Content = story.Content
	existing.Description = story.Description
	existing.Writers = story.Writers
	existing.TimelineJSON = story.TimelineJSON
	existing.IsPublished = story.IsPublished
	existing.ShowSceneTimeline = story.ShowSceneTimeline
	existing.Characters = nil
	existing.Images = nil
	existing.Genres = nil
	for _, c := range characters {
		c.StoryID = &existing.ID
		existing.Characters = append(existing.Characters, *c)
	}
	for _, img := range images {
		img.StoryID = existing.ID
		existing.Images = append(existing.Images, *img)
	}
	for _, g := range genres {
		g.StoryID = existing.ID
		f.fillGenre(g)
		existing.Genres = append(existing.Genres, *g)
	}
	return nil
}

func (f *fakeStoryRepo) DeleteStory(ctx context.Context, id uint64) error {
	delete(f.stories, id)
	if f.engagement != nil {
		f.engagement.purgeStory(id)
	}
	return nil
}

func (f *fakeStoryRepo) UpdatePublished(ctx context.Context, id uint64, published bool) error {
	story, ok := f.stories[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	story.IsPublished = published
	return nil
}

func (f *fakeStoryRepo) AddWatchTime(ctx context.Context, id uint64, seconds int64) error {
	story, ok := f.stories[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	story.TotalWatchTime += seconds
	return nil
}

func (f *fakeStoryRepo) GetStoryNumbersDesc(ctx context.Context) ([]string, error) {
	var numbers []string
	for _, story := range f.stories {
		if story.StoryNumber != nil {
			numbers = append(numbers, *story.StoryNumber)
		}
	}
	sort.Slice(numbers, func(i, j int) bool {
		if len(numbers[i]) != len(numbers[j]) {
			return len(numbers[i]) > len(numbers[j])
		}
		return numbers[i] > numbers[j]
	})
	return numbers, nil
}

func (f *fakeStoryRepo) GetStoriesWithoutNumber(ctx context.Context) ([]*model.Story, error) {
	var res []*model.Story
	for _, story := range f.sorted() {
		if story.StoryNumber == nil {
			res = append(res, story)
		}
	}
	// oldest first
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res, nil
}

func (f *fakeStoryRepo) UpdateStoryNumber(ctx context.Context, id uint64, number string) error {
	if len(f.numberUpdateErrs) > 0 {
		err := f.numberUpdateErrs[0]
		f.numberUpdateErrs = f.numberUpdateErrs[1:]
		if err != nil {
			return err
		}
	}
	for _, story := range f.stories {
		if story.StoryNumber != nil && *story.StoryNumber == number {
			return gorm.ErrDuplicatedKey
		}
	}
	story, ok := f.stories[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	n := number
	story.StoryNumber = &n
	return nil
}

func (f *fakeStoryRepo) UpdateStoryCounts(ctx context.Context, id uint64, likeCount, viewCount int64) error {
	story, ok := f.stories[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	story.LikeCount = int(likeCount)
	story.ViewCount = int(viewCount)
	return nil
}

// sorted returns stories newest first, matching the created_at DESC
// ordering of the real queries.
func (f *fakeStoryRepo) sorted() []*model.Story {
	res := make([]*model.Story, 0, len(f.stories))
	for _, story := range f.stories {
		res = append(res, story)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	return res
}

func page(stories []*model.Story, limit, offset int) []*model.Story {
	if offset >= len(stories) {
		return nil
	}
	stories = stories[offset:]
	if limit > 0 && len(stories) > limit {
		stories = stories[:limit]
	}
	return stories
}

type fakeEngagementRepo struct {
	storyRepo *fakeStoryRepo

	likes     map[string]struct{}
	favorites map[string]time.Time
	views     map[string]int

	nextCommentID uint64
	comments      map[uint64]*model.Comment

	commentErr error // returned by GetCommentByID when set
}

func newFakeEngagementRepo(storyRepo *fakeStoryRepo) *fakeEngagementRepo {
	f := &fakeEngagementRepo{
		storyRepo: storyRepo,
		likes:     make(map[string]struct{}),
		favorites: make(map[string]time.Time),
		views:     make(map[string]int),
		comments:  make(map[uint64]*model.Comment),
	}
	storyRepo.engagement = f
	return f
}

// purgeStory mirrors the transactional cascade of the real delete.
func (f *fakeEngagementRepo) purgeStory(storyID uint64) {
	prefix := fmt.Sprintf("%d:", storyID)
	for key := range f.likes {
		if strings.HasPrefix(key, prefix) {
			delete(f.likes, key)
		}
	}
	for key := range f.favorites {
		if strings.HasPrefix(key, prefix) {
			delete(f.favorites, key)
		}
	}
	for key := range f.views {
		if strings.HasPrefix(key, prefix) {
			delete(f.views, key)
		}
	}
	for id, c := range f.comments {
		if c.StoryID == storyID {
			delete(f.comments, id)
		}
	}
}

func engKey(storyID uint64, username string) string {
	return fmt.Sprintf("%d:%s", storyID, username)
}

func (f *fakeEngagementRepo) AddLike(ctx context.Context, storyID uint64, username string) (bool, error) {
	key := engKey(storyID, username)
	if _, ok := f.likes[key]; ok {
		return false, nil
	}
	f.likes[key] = struct{}{}
	if story, ok := f.storyRepo.stories[storyID]; ok {
		story.LikeCount++
	}
	return true, nil
}

func (f *fakeEngagementRepo) RemoveLike(ctx context.Context, storyID uint64, username string) (bool, error) {
	key := engKey(storyID, username)
	if _, ok := f.likes[key]; !ok {
		return false, nil
	}
	delete(f.likes, key)
	if story, ok := f.storyRepo.stories[storyID]; ok && story.LikeCount > 0 {
		story.LikeCount--
	}
	return true, nil
}

func (f *fakeEngagementRepo) CheckLikeExists(ctx context.Context, storyID uint64, username string) (bool, error) {
	_, ok := f.likes[engKey(storyID, username)]
	return ok, nil
}

func (f *fakeEngagementRepo) AddFavorite(ctx context.Context, storyID uint64, username string) (bool, error) {
	key := engKey(storyID, username)
	if _, ok := f.favorites[key]; ok {
		return false, nil
	}
	f.favorites[key] = time.Now()
	return true, nil
}

func (f *fakeEngagementRepo) RemoveFavorite(ctx context.Context, storyID uint64, username string) (bool, error) {
	key := engKey(storyID, username)
	if _, ok := f.favorites[key]; !ok {
		return false, nil
	}
	delete(f.favorites, key)
	return true, nil
}

func (f *fakeEngagementRepo) CheckFavoriteExists(ctx context.Context, storyID uint64, username string) (bool, error) {
	_, ok := f.favorites[engKey(storyID, username)]
	return ok, nil
}

func (f *fakeEngagementRepo) GetFavoriteStoryIDs(ctx context.Context, username string) ([]uint64, error) {
	var ids []uint64
	for key := range f.favorites {
		var sid uint64
		var user string
		if _, err := fmt.Sscanf(key, "%d:%s", &sid, &user); err == nil && user == username {
			ids = append(ids, sid)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeEngagementRepo) RecordView(ctx context.Context, storyID uint64, username string, now time.Time) (bool, error) {
	key := engKey(storyID, username)
	if _, ok := f.views[key]; ok {
		f.views[key]++
		return false, nil
	}
	f.views[key] = 1
	if story, ok := f.storyRepo.stories[storyID]; ok {
		story.ViewCount++
	}
	return true, nil
}

func (f *fakeEngagementRepo) CreateComment(ctx context.Context, comment *model.Comment) error {
	f.nextCommentID++
	comment.ID = f.nextCommentID
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeEngagementRepo) GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	if f.commentErr != nil {
		return nil, f.commentErr
	}
	comment, ok := f.comments[commentID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comment, nil
}

func (f *fakeEngagementRepo) DeleteComment(ctx context.Context, commentID uint64) error {
	delete(f.comments, commentID)
	return nil
}

func (f *fakeEngagementRepo) GetCommentsByStoryID(ctx context.Context, storyID uint64, limit, offset int) ([]*model.Comment, error) {
	var res []*model.Comment
	for _, c := range f.comments {
		if c.StoryID == storyID {
			res = append(res, c)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID > res[j].ID })
	if offset >= len(res) {
		return nil, nil
	}
	res = res[offset:]
	if limit > 0 && len(res) > limit {
		res = res[:limit]
	}
	return res, nil
}

func (f *fakeEngagementRepo) CountComments(ctx context.Context, storyID uint64) (int64, error) {
	var count int64
	for _, c := range f.comments {
		if c.StoryID == storyID {
			count++
		}
	}
	return count, nil
}

func (f *fakeEngagementRepo) CountLikes(ctx context.Context, storyID uint64) (int64, error) {
	var count int64
	for key := range f.likes {
		var sid uint64
		var user string
		if _, err := fmt.Sscanf(key, "%d:%s", &sid, &user); err == nil && sid == storyID {
			count++
		}
	}
	return count, nil
}

func (f *fakeEngagementRepo) CountViews(ctx context.Context, storyID uint64) (int64, error) {
	var count int64
	for key := range f.views {
		var sid uint64
		var user string
		if _, err := fmt.Sscanf(key, "%d:%s", &sid, &user); err == nil && sid == storyID {
			count++
		}
	}
	return count, nil
}

type fakeGenreRepo struct {
	genres map[uint64]*model.Genre
}

func newFakeGenreRepo(genres ...*model.Genre) *fakeGenreRepo {
	f := &fakeGenreRepo{genres: make(map[uint64]*model.Genre)}
	for _, g := range genres {
		f.genres[g.ID] = g
	}
	return f
}

func (f *fakeGenreRepo) GetAll(ctx context.Context) ([]*model.Genre, error) {
	res := make([]*model.Genre, 0, len(f.genres))
	for _, g := range f.genres {
		res = append(res, g)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (f *fakeGenreRepo) GetByIds(ctx context.Context, ids []uint64) ([]*model.Genre, error) {
	var res []*model.Genre
	seen := make(map[uint64]struct{})
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if g, ok := f.genres[id]; ok {
			res = append(res, g)
		}
	}
	return res, nil
}

type fakeUserClient struct {
	emails map[string]string
}

func (f *fakeUserClient) GetUserEmail(ctx context.Context, username string) string {
	return f.emails[username]
}
