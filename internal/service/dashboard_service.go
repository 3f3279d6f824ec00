package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/dto"
	"github.com/noah-isme/class-scheduler-api/internal/models"
)

type metricsSnapshotter interface {
	Snapshot() models.SystemMetrics
}

// DashboardService composes the landing page payload.
type DashboardService struct {
	datasets datasetSnapshotter
	metrics  metricsSnapshotter
	logger   *zap.Logger
}

// NewDashboardService constructs the service. metrics may be nil.
func NewDashboardService(datasets datasetSnapshotter, metrics metricsSnapshotter, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{datasets: datasets, metrics: metrics, logger: logger}
}

// Summary returns dataset counts and the group, teacher and room lists.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardResponse, error) {
	ds, err := s.datasets.Snapshot()
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		Dataset:  DatasetInfoOf(ds),
		Groups:   nonNil(ds.Groups),
		Teachers: nonNil(ds.Teachers),
		Rooms:    nonNil(ds.Rooms),
	}
	if s.metrics != nil {
		resp.System = s.metrics.Snapshot()
	}
	return resp, nil
}

// DatasetInfoOf summarises a dataset snapshot.
func DatasetInfoOf(ds *models.Dataset) dto.DatasetInfo {
	return dto.DatasetInfo{
		Version:  ds.Version,
		Source:   ds.Source,
		LoadedAt: ds.LoadedAt,
		Counts:   ds.Counts(),
	}
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
