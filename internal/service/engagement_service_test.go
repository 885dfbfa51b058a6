package service

import (
	"context"
	"errors"
	"storyapp/internal/api/dto"
	"storyapp/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngagementFixture(t *testing.T) (EngagementService, *fakeStoryRepo, *fakeEngagementRepo, *model.Story) {
	t.Helper()
	storyRepo := newFakeStoryRepo()
	engagementRepo := newFakeEngagementRepo(storyRepo)
	assembler := NewStoryAssembler(engagementRepo, &fakeUserClient{emails: map[string]string{"ada": "ada@example.com"}})
	svc := NewEngagementService(engagementRepo, storyRepo, assembler)

	story := storyRepo.addStory(&model.Story{
		Title:          "The Clockmaker",
		AuthorUsername: "ada",
		IsPublished:    true,
	})
	return svc, storyRepo, engagementRepo, story
}

func TestLikeStoryIncrementsOnce(t *testing.T) {
	svc, storyRepo, _, story := newEngagementFixture(t)
	ctx := context.Background()

	res, err := svc.LikeStory(ctx, story.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, res.LikeCount)
	assert.True(t, res.IsLiked)

	// A second like from the same user is a no-op.
	res, err = svc.LikeStory(ctx, story.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, res.LikeCount)
	assert.True(t, res.IsLiked)

	assert.Equal(t, 1, storyRepo.stories[story.ID].LikeCount)
}

func TestUnlikeStoryFloorsAtZero(t *testing.T) {
	svc, _, _, story := newEngagementFixture(t)
	ctx := context.Background()

	_, err := svc.LikeStory(ctx, story.ID, "bob")
	require.NoError(t, err)

	res, err := svc.UnlikeStory(ctx, story.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, 0, res.LikeCount)
	assert.False(t, res.IsLiked)

	// Unliking again does not drive the counter negative.
	res, err = svc.UnlikeStory(ctx, story.ID, "bob")
	require.NoError(t, err)
	assert.Equal(t, 0, res.LikeCount)
}

func TestLikeStoryNotFound(t *testing.T) {
	svc, _, _, _ := newEngagementFixture(t)
	_, err := svc.LikeStory(context.Background(), 999, "bob")
	assert.ErrorIs(t, err, ErrStoryNotFound)
}

func TestFavoriteToggle(t *testing.T) {
	svc, _, engagementRepo, story := newEngagementFixture(t)
	ctx := context.Background()

	res, err := svc.FavoriteStory(ctx, story.ID, "bob")
	require.NoError(t, err)
	assert.True(t, res.IsFavorited)

	ids, err := engagementRepo.GetFavoriteStoryIDs(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []uint64{story.ID}, ids)

	res, err = svc.UnfavoriteStory(ctx, story.ID, "bob")
	require.NoError(t, err)
	assert.False(t, res.IsFavorited)
}

func TestRecordViewDeduplicatesPerViewer(t *testing.T) {
	svc, storyRepo, engagementRepo, story := newEngagementFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.RecordView(ctx, story.ID, "bob"))
	require.NoError(t, svc.RecordView(ctx, story.ID, "bob"))
	require.NoError(t, svc.RecordView(ctx, story.ID, "carol"))

	// Aggregate counts distinct viewers; the per-viewer row keeps tallying.
	assert.Equal(t, 2, storyRepo.stories[story.ID].ViewCount)
	assert.Equal(t, 2, engagementRepo.views[engKey(story.ID, "bob")])
	assert.Equal(t, 1, engagementRepo.views[engKey(story.ID, "carol")])
}

func TestRecordViewAnonymousIsNoOp(t *testing.T) {
	svc, storyRepo, _, story := newEngagementFixture(t)

	require.NoError(t, svc.RecordView(context.Background(), story.ID, ""))
	assert.Equal(t, 0, storyRepo.stories[story.ID].ViewCount)
}

func TestTrackWatchTime(t *testing.T) {
	svc, storyRepo, _, story := newEngagementFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.TrackWatchTime(ctx, story.ID, 120))
	require.NoError(t, svc.TrackWatchTime(ctx, story.ID, 30))
	assert.Equal(t, int64(150), storyRepo.stories[story.ID].TotalWatchTime)

	assert.ErrorIs(t, svc.TrackWatchTime(ctx, story.ID, 0), ErrWatchTimeInvalid)
	assert.ErrorIs(t, svc.TrackWatchTime(ctx, story.ID, -5), ErrWatchTimeInvalid)
}

func TestCommentsLifecycle(t *testing.T) {
	svc, _, _, story := newEngagementFixture(t)
	ctx := context.Background()

	comment, err := svc.AddComment(ctx, story.ID, "bob", &dto.CommentCreateDTO{Content: "loved it"})
	require.NoError(t, err)
	assert.Equal(t, "bob", comment.Username)

	count, err := svc.GetCommentCount(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Only the author may delete.
	err = svc.DeleteComment(ctx, comment.ID, "carol")
	assert.ErrorIs(t, err, UnauthorizedError)

	require.NoError(t, svc.DeleteComment(ctx, comment.ID, "bob"))

	count, err = svc.GetCommentCount(ctx, story.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestGetCommentsNewestFirst(t *testing.T) {
	svc, _, _, story := newEngagementFixture(t)
	ctx := context.Background()

	_, err := svc.AddComment(ctx, story.ID, "bob", &dto.CommentCreateDTO{Content: "first"})
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, story.ID, "carol", &dto.CommentCreateDTO{Content: "second"})
	require.NoError(t, err)

	comments, err := svc.GetComments(ctx, story.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, "first", comments[1].Content)
}

func TestDeleteCommentNotFound(t *testing.T) {
	svc, _, _, _ := newEngagementFixture(t)
	err := svc.DeleteComment(context.Background(), 42, "bob")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestRepoErrorsAreNotMaskedAsNotFound(t *testing.T) {
	svc, storyRepo, engagementRepo, story := newEngagementFixture(t)
	ctx := context.Background()

	boom := errors.New("connection refused")
	storyRepo.getErr = boom

	_, err := svc.LikeStory(ctx, story.ID, "bob")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrStoryNotFound)

	err = svc.RecordView(ctx, story.ID, "bob")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrStoryNotFound)

	storyRepo.getErr = nil
	engagementRepo.commentErr = boom

	err = svc.DeleteComment(ctx, 1, "bob")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrCommentNotFound)
}
