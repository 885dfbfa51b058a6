package service

import (
	"context"
	"storyapp/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNextStoryNumber(t *testing.T) {
	cases := []struct {
		current string
		want    string
	}{
		{"", "10000"},
		{"10000", "10001"},
		{"10041", "10042"},
		{"99998", "99999"},
		{"99999", "100000"},
		{"100000", "100001"},
		{"999999", "1000000"},
		{"not-a-number", "10000"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, nextStoryNumber(c.current), "current=%q", c.current)
	}
}

func TestMaxOf(t *testing.T) {
	assert.Equal(t, "", maxOf(nil))
	assert.Equal(t, "", maxOf([]string{"", " "}))
	assert.Equal(t, "100000", maxOf([]string{"100000", "99999", "10000"}))
}

func TestAllocatorAssignSeedsFirstNumber(t *testing.T) {
	repo := newFakeStoryRepo()
	story := repo.addStory(&model.Story{Title: "first", AuthorUsername: "ada"})

	allocator := NewNumberAllocator(repo)
	number, err := allocator.Assign(context.Background(), story.ID)

	require.NoError(t, err)
	assert.Equal(t, "10000", number)
	require.NotNil(t, story.StoryNumber)
	assert.Equal(t, "10000", *story.StoryNumber)
}

func TestAllocatorAssignIncrementsPastMax(t *testing.T) {
	repo := newFakeStoryRepo()
	n := "99999"
	repo.addStory(&model.Story{Title: "maxed", AuthorUsername: "ada", StoryNumber: &n})
	story := repo.addStory(&model.Story{Title: "next", AuthorUsername: "ada"})

	allocator := NewNumberAllocator(repo)
	number, err := allocator.Assign(context.Background(), story.ID)

	require.NoError(t, err)
	assert.Equal(t, "100000", number)
}

func TestAllocatorAssignRetriesOnDuplicate(t *testing.T) {
	repo := newFakeStoryRepo()
	story := repo.addStory(&model.Story{Title: "contended", AuthorUsername: "ada"})
	// Two racing writers grab the first two candidates.
	repo.numberUpdateErrs = []error{gorm.ErrDuplicatedKey, gorm.ErrDuplicatedKey, nil}

	allocator := NewNumberAllocator(repo)
	number, err := allocator.Assign(context.Background(), story.ID)

	require.NoError(t, err)
	assert.Equal(t, "10000", number)
}

func TestAllocatorAssignGivesUpAfterRetryBudget(t *testing.T) {
	repo := newFakeStoryRepo()
	story := repo.addStory(&model.Story{Title: "unlucky", AuthorUsername: "ada"})
	for i := 0; i < maxAllocRetries; i++ {
		repo.numberUpdateErrs = append(repo.numberUpdateErrs, gorm.ErrDuplicatedKey)
	}

	allocator := NewNumberAllocator(repo)
	_, err := allocator.Assign(context.Background(), story.ID)

	assert.ErrorIs(t, err, ErrStoryNumberExhausted)
	assert.Nil(t, repo.stories[story.ID].StoryNumber)
}

func TestAllocatorBackfillAssignsOldestFirst(t *testing.T) {
	repo := newFakeStoryRepo()
	n := "10005"
	repo.addStory(&model.Story{Title: "numbered", AuthorUsername: "ada", StoryNumber: &n})
	older := repo.addStory(&model.Story{Title: "older", AuthorUsername: "ada"})
	newer := repo.addStory(&model.Story{Title: "newer", AuthorUsername: "ada"})

	allocator := NewNumberAllocator(repo)
	assigned, err := allocator.Backfill(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, assigned)
	require.NotNil(t, repo.stories[older.ID].StoryNumber)
	require.NotNil(t, repo.stories[newer.ID].StoryNumber)
	assert.Equal(t, "10006", *repo.stories[older.ID].StoryNumber)
	assert.Equal(t, "10007", *repo.stories[newer.ID].StoryNumber)
}
