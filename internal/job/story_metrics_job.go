package job

import (
	"context"
	log "log/slog"
	"storyapp/internal/pkg/consts"
	"storyapp/internal/pkg/logger"
	"storyapp/internal/pkg/redis"
	"storyapp/internal/pkg/util"
	"storyapp/internal/repository"

	"github.com/google/uuid"
)

// StoryMetricsJob 把脏集合里的故事聚合计数和明细表对账。
// 点赞和浏览都是先改明细再改计数，中途挂掉会留下偏差，
// 这里用明细表的真实行数把计数拉回来。
type StoryMetricsJob struct {
	storyRepo      repository.StoryRepo
	engagementRepo repository.EngagementRepo
}

func NewStoryMetricsJob(storyRepo repository.StoryRepo, engagementRepo repository.EngagementRepo) *StoryMetricsJob {
	return &StoryMetricsJob{
		storyRepo:      storyRepo,
		engagementRepo: engagementRepo,
	}
}

func (s *StoryMetricsJob) Run() {
	traceID := "job-story-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	processingKey := consts.StoryDirtyKey + ":processing"
	err := redis.Rename(ctx, consts.StoryDirtyKey, processingKey)
	if err != nil {
		return
	}

	tempSet, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get story dirty set error", "err", err)
		return
	}

	storyIDs, err := util.StrSliceToUInt64Slice(tempSet)
	if err != nil {
		log.ErrorContext(ctx, "convert story set to int slice error", "err", err)
		return
	}

	synced := 0
	for _, sid := range storyIDs {
		likes, err := s.engagementRepo.CountLikes(ctx, sid)
		if err != nil {
			log.ErrorContext(ctx, "count likes error", "sid", sid, "err", err)
			continue
		}
		views, err := s.engagementRepo.CountViews(ctx, sid)
		if err != nil {
			log.ErrorContext(ctx, "count views error", "sid", sid, "err", err)
			continue
		}
		if err := s.storyRepo.UpdateStoryCounts(ctx, sid, likes, views); err != nil {
			log.ErrorContext(ctx, "update story counts error", "sid", sid, "err", err)
			continue
		}
		synced++
	}

	err = redis.DeleteKey(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "delete story processing set error", "err", err)
	}

	log.InfoContext(ctx, "sync story metrics success",
		"dirty_count", len(storyIDs),
		"synced_count", synced)
}
