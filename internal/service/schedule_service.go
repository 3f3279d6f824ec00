package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/dto"
	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/internal/scheduler"
)

const schedulesCachePattern = "schedules:*"

type datasetSnapshotter interface {
	Snapshot() (*models.Dataset, error)
}

// ScheduleService runs the scheduler over the active dataset and caches full results per dataset version.
type ScheduleService struct {
	datasets  datasetSnapshotter
	scheduler *scheduler.Scheduler
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	cacheTTL  time.Duration
	now       func() time.Time
}

// NewScheduleService wires the scheduling use case. cache and metrics may be nil.
func NewScheduleService(datasets datasetSnapshotter, sched *scheduler.Scheduler, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cacheTTL time.Duration) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		datasets:  datasets,
		scheduler: sched,
		cache:     cache,
		metrics:   metrics,
		logger:    logger,
		cacheTTL:  cacheTTL,
		now:       time.Now,
	}
}

// Generate returns the schedule for the active dataset narrowed by filter.
func (s *ScheduleService) Generate(ctx context.Context, filter dto.ScheduleFilter) (*dto.GeneratedSchedule, error) {
	ds, err := s.datasets.Snapshot()
	if err != nil {
		return nil, err
	}

	policy := s.scheduler.Policy()
	key := fmt.Sprintf("schedules:%s:%s:%s", ds.Version, policy.Strategy, scheduler.FormatWindows(policy.Windows))

	generated, hit, err := Remember(ctx, s.cache, key, s.cacheTTL, func(context.Context) (dto.GeneratedSchedule, error) {
		return s.run(ds), nil
	})
	if err != nil {
		return nil, err
	}
	generated.Cached = hit

	out := generated.Filtered(filter)
	return &out, nil
}

func (s *ScheduleService) run(ds *models.Dataset) dto.GeneratedSchedule {
	started := s.now()
	result := s.scheduler.Generate(ds)
	duration := s.now().Sub(started)

	unplaced := result.Unplaced()
	reasons := make(map[models.UnplacedReason]int)
	for _, o := range unplaced {
		reasons[o.Reason]++
	}
	s.metrics.ObserveSchedulerRun(duration, len(result.Sessions), reasons)

	policy := s.scheduler.Policy()
	summary := dto.ScheduleSummary{
		Tasks:    len(result.Outcomes),
		Placed:   len(result.Outcomes) - len(unplaced),
		Unplaced: len(unplaced),
		Sessions: len(result.Sessions),
		Passes:   result.Passes,
	}

	s.logger.Info("schedule generated",
		zap.String("dataset_version", ds.Version),
		zap.Int("tasks", summary.Tasks),
		zap.Int("placed", summary.Placed),
		zap.Int("unplaced", summary.Unplaced),
		zap.Int("sessions", summary.Sessions),
		zap.Int("passes", len(result.Passes)),
		zap.Duration("duration", duration),
	)

	return dto.GeneratedSchedule{
		Sessions:       result.Sessions,
		Unplaced:       unplaced,
		Summary:        summary,
		DatasetVersion: ds.Version,
		Windows:        scheduler.FormatWindows(policy.Windows),
		Strategy:       string(policy.Strategy),
		GeneratedAt:    s.now().UTC(),
	}
}
