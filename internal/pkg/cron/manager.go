package cron

import (
	log "log/slog"
	"storyapp/internal/job"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine            *cron.Cron
	storyMetricsJob   *job.StoryMetricsJob
	numberBackfillJob *job.NumberBackfillJob
}

func NewCronManager(storyMetricsJob *job.StoryMetricsJob, numberBackfillJob *job.NumberBackfillJob) *Manager {
	return &Manager{
		engine:            cron.New(cron.WithSeconds()),
		storyMetricsJob:   storyMetricsJob,
		numberBackfillJob: numberBackfillJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob("0 */5 * * * *", s.storyMetricsJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@hourly", s.numberBackfillJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron engine started")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron engine stopped")
	s.engine.Stop()
}
