package service

import (
	"context"
	"errors"
	log "log/slog"
	"storyapp/internal/pkg/database"
	"storyapp/internal/repository"
	"strconv"
	"strings"
)

// seedStoryNumber is handed out when no story has a number yet.
const seedStoryNumber = "10000"

// maxAllocRetries bounds the insert-retry loop when concurrent
// writers race for the same next number.
const maxAllocRetries = 5

// nextStoryNumber computes the successor of the numerically largest
// allocated number. Numbers are decimal strings with no leading zeros.
// Incrementing past the current digit length (99999 -> 100000) just
// grows the string, so the sequence never wraps.
func nextStoryNumber(current string) string {
	if current == "" {
		return seedStoryNumber
	}
	v, err := strconv.ParseUint(current, 10, 64)
	if err != nil {
		// A malformed number in the table should not poison allocation.
		return seedStoryNumber
	}
	return strconv.FormatUint(v+1, 10)
}

// maxOf returns the numerically largest of a descending-ordered number
// list, or "" when none are allocated.
func maxOf(numbers []string) string {
	for _, n := range numbers {
		if strings.TrimSpace(n) != "" {
			return n
		}
	}
	return ""
}

// NumberAllocator hands out monotonically increasing story numbers.
// Uniqueness is enforced by the story_number unique index, so two
// racing allocators cannot both win the same value.
type NumberAllocator struct {
	storyRepo repository.StoryRepo
}

func NewNumberAllocator(storyRepo repository.StoryRepo) *NumberAllocator {
	return &NumberAllocator{storyRepo: storyRepo}
}

// Next returns the next free story number candidate.
func (a *NumberAllocator) Next(ctx context.Context) (string, error) {
	numbers, err := a.storyRepo.GetStoryNumbersDesc(ctx)
	if err != nil {
		return "", err
	}
	return nextStoryNumber(maxOf(numbers)), nil
}

// Assign persists a number on a story that has none, retrying with a
// fresh candidate when another writer grabs it first.
func (a *NumberAllocator) Assign(ctx context.Context, storyID uint64) (string, error) {
	for attempt := 0; attempt < maxAllocRetries; attempt++ {
		candidate, err := a.Next(ctx)
		if err != nil {
			return "", err
		}
		err = a.storyRepo.UpdateStoryNumber(ctx, storyID, candidate)
		if err == nil {
			return candidate, nil
		}
		if !database.IsDuplicateKey(err) {
			return "", err
		}
		log.Warn("story number taken, retrying", "storyID", storyID, "candidate", candidate)
	}
	return "", ErrStoryNumberExhausted
}

// Backfill assigns numbers to stories that predate numbering, one at a
// time and oldest first, re-reading the current max before each so the
// sequence stays dense.
func (a *NumberAllocator) Backfill(ctx context.Context) (int, error) {
	stories, err := a.storyRepo.GetStoriesWithoutNumber(ctx)
	if err != nil {
		return 0, err
	}
	assigned := 0
	for _, story := range stories {
		if _, err := a.Assign(ctx, story.ID); err != nil {
			if errors.Is(err, ErrStoryNumberExhausted) {
				log.Error("backfill gave up on story", "storyID", story.ID)
				continue
			}
			return assigned, err
		}
		assigned++
	}
	return assigned, nil
}
