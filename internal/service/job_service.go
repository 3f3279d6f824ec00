package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/dto"
	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/pkg/jobs"
)

const (
	// JobScheduleWarmup generates the unfiltered schedule so the next request is served from cache.
	JobScheduleWarmup = "schedule.warmup"
	// JobExportsCleanup removes expired export files.
	JobExportsCleanup = "exports.cleanup"
)

type jobQueue interface {
	Register(jobType string, handler jobs.Handler)
	Enqueue(job jobs.Job) error
	Every(ctx context.Context, interval time.Duration, job jobs.Job)
}

type exportCleaner interface {
	Cleanup(ttl time.Duration) ([]string, error)
}

// JobService registers the background jobs of the API and schedules them.
type JobService struct {
	queue     jobQueue
	schedules scheduleGenerator
	exports   exportCleaner
	logger    *zap.Logger
}

// NewJobService registers job handlers on queue. exports may be nil when exports are disabled.
func NewJobService(queue jobQueue, schedules scheduleGenerator, exports exportCleaner, logger *zap.Logger) *JobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &JobService{queue: queue, schedules: schedules, exports: exports, logger: logger}
	queue.Register(JobScheduleWarmup, s.warmup)
	if exports != nil {
		queue.Register(JobExportsCleanup, s.cleanup)
	}
	return s
}

// EnqueueWarmup asks the workers to prebuild the schedule for ds.
func (s *JobService) EnqueueWarmup(ds *models.Dataset) {
	job := jobs.Job{ID: uuid.NewString(), Type: JobScheduleWarmup}
	if ds != nil {
		job.Payload = ds.Version
	}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Warn("schedule warmup not queued", zap.Error(err))
	}
}

// RunCleanup enqueues export cleanup every interval until ctx is done.
func (s *JobService) RunCleanup(ctx context.Context, interval time.Duration) {
	if s.exports == nil || interval <= 0 {
		return
	}
	s.queue.Every(ctx, interval, jobs.Job{ID: "exports-cleanup", Type: JobExportsCleanup})
}

func (s *JobService) warmup(ctx context.Context, job jobs.Job) error {
	res, err := s.schedules.Generate(ctx, dto.ScheduleFilter{})
	if err != nil {
		return err
	}
	s.logger.Info("schedule warmed",
		zap.Any("dataset_version", job.Payload),
		zap.Int("sessions", len(res.Sessions)),
		zap.Int("unplaced", len(res.Unplaced)),
	)
	return nil
}

func (s *JobService) cleanup(ctx context.Context, job jobs.Job) error {
	_, err := s.exports.Cleanup(0)
	return err
}
