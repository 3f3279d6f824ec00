package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/internal/scheduler"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
)

type datasetSource interface {
	Load(ctx context.Context) (*models.Dataset, error)
	Source() string
}

// DatasetService holds the current scheduling dataset. A snapshot is never mutated after it is published,
// so readers can use it without holding the lock.
type DatasetService struct {
	source  datasetSource
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time

	mu        sync.RWMutex
	current   *models.Dataset
	listeners []func(*models.Dataset)
}

// NewDatasetService constructs the service. cache and metrics may be nil.
func NewDatasetService(source datasetSource, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *DatasetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatasetService{source: source, cache: cache, metrics: metrics, logger: logger, now: time.Now}
}

// OnReload registers fn to run after each successful reload. Register listeners before serving traffic.
func (s *DatasetService) OnReload(fn func(*models.Dataset)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Reload reads the dataset from its source and publishes it. On failure the previous snapshot stays active.
func (s *DatasetService) Reload(ctx context.Context) (*models.Dataset, error) {
	started := s.now()
	ds, err := s.source.Load(ctx)
	if err != nil {
		s.metrics.RecordDatasetReload(false)
		s.logger.Error("dataset load failed", zap.String("source", s.source.Source()), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrDatasetInvalid.Code, appErrors.ErrDatasetInvalid.Status, "failed to load scheduling dataset")
	}

	ds.Version = uuid.NewString()
	ds.Source = s.source.Source()
	ds.LoadedAt = s.now().UTC()

	s.mu.Lock()
	s.current = ds
	listeners := append(([]func(*models.Dataset))(nil), s.listeners...)
	s.mu.Unlock()

	s.metrics.RecordDatasetReload(true)
	counts := ds.Counts()
	s.logger.Info("dataset loaded",
		zap.String("version", ds.Version),
		zap.String("source", ds.Source),
		zap.Int("teachers", counts.Teachers),
		zap.Int("rooms", counts.Rooms),
		zap.Int("groups", counts.Groups),
		zap.Int("subjects", counts.Subjects),
		zap.Int("timeslots", counts.Timeslots),
		zap.Int("registrations", counts.Registrations),
		zap.Duration("duration", s.now().Sub(started)),
	)
	if issues := scheduler.CheckReferences(ds); len(issues) > 0 {
		s.logger.Warn("dataset has dangling references", zap.Int("count", len(issues)), zap.Stringer("first", issues[0]))
	}

	if err := s.cache.Invalidate(ctx, schedulesCachePattern); err != nil {
		s.logger.Warn("failed to drop cached schedules after reload", zap.Error(err))
	}
	for _, fn := range listeners {
		fn(ds)
	}
	return ds, nil
}

// Snapshot returns the active dataset.
func (s *DatasetService) Snapshot() (*models.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, appErrors.ErrDatasetNotLoaded
	}
	return s.current, nil
}

// Ready reports whether a dataset has been loaded.
func (s *DatasetService) Ready() bool {
	_, err := s.Snapshot()
	return err == nil
}
