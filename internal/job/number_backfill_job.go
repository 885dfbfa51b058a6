package job

import (
	"context"
	log "log/slog"
	"storyapp/internal/pkg/consts"
	"storyapp/internal/pkg/logger"
	"storyapp/internal/pkg/redis"
	"storyapp/internal/service"
	"time"

	"github.com/google/uuid"
)

// NumberBackfillJob 给没有编号的故事补号，多实例下靠锁互斥
type NumberBackfillJob struct {
	allocator *service.NumberAllocator
}

func NewNumberBackfillJob(allocator *service.NumberAllocator) *NumberBackfillJob {
	return &NumberBackfillJob{allocator: allocator}
}

func (s *NumberBackfillJob) Run() {
	traceID := "job-number-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	lockValue := uuid.NewString()
	locked, err := redis.TryLock(ctx, consts.NumberBackfillLock, lockValue, 5*time.Minute, 0)
	if err == nil && !locked {
		return
	}
	if err == nil {
		defer redis.UnLock(ctx, consts.NumberBackfillLock, lockValue)
	}

	assigned, err := s.allocator.Backfill(ctx)
	if err != nil {
		log.ErrorContext(ctx, "story number backfill error", "assigned", assigned, "err", err)
		return
	}
	if assigned > 0 {
		log.InfoContext(ctx, "story number backfill success", "assigned", assigned)
	}
}
