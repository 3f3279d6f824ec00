package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/dto"
	"github.com/noah-isme/class-scheduler-api/internal/models"
	"github.com/noah-isme/class-scheduler-api/internal/scheduler"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
)

type staticSnapshot struct {
	dataset *models.Dataset
}

func (s staticSnapshot) Snapshot() (*models.Dataset, error) {
	if s.dataset == nil {
		return nil, appErrors.ErrDatasetNotLoaded
	}
	return s.dataset, nil
}

func newTestScheduleService(t *testing.T, ds *models.Dataset, cache *CacheService) *ScheduleService {
	t.Helper()
	sched, err := scheduler.New(scheduler.DefaultPolicy())
	require.NoError(t, err)
	return NewScheduleService(staticSnapshot{dataset: ds}, sched, cache, NewMetricsService(), zap.NewNop(), time.Minute)
}

func twoGroupDataset() *models.Dataset {
	ds := sampleDataset()
	ds.Version = "v1"
	ds.Groups = append(ds.Groups, models.StudentGroup{ID: "G2", Name: "CS-2"})
	ds.Subjects = append(ds.Subjects, models.Subject{ID: "S2", Name: "Orphan", Theory: 1})
	ds.Registrations = append(ds.Registrations,
		models.Registration{GroupID: "G2", SubjectID: "S1"},
		models.Registration{GroupID: "G2", SubjectID: "S2"},
	)
	return ds
}

func TestScheduleServiceGenerate(t *testing.T) {
	svc := newTestScheduleService(t, twoGroupDataset(), nil)

	res, err := svc.Generate(context.Background(), dto.ScheduleFilter{})
	require.NoError(t, err)

	// G1 takes periods 1-2; G2 cannot fit its two-hour block in the remaining single period.
	require.Len(t, res.Sessions, 2)
	assert.Equal(t, []int{1, 2}, []int{res.Sessions[0].TimeslotID, res.Sessions[1].TimeslotID})
	assert.Equal(t, "G1", res.Sessions[0].GroupID)
	assert.Equal(t, 3, res.Summary.Tasks)
	assert.Equal(t, 1, res.Summary.Placed)
	assert.Equal(t, 2, res.Summary.Unplaced)
	assert.Len(t, res.Unplaced, 2)
	assert.Equal(t, "v1", res.DatasetVersion)
	assert.Equal(t, "1,2,3,4,6,7,8;9,10,11,12", res.Windows)
	assert.Equal(t, string(scheduler.StrategyFirstFitNoBacktrack), res.Strategy)
	assert.False(t, res.Cached)

	reasons := map[models.UnplacedReason]int{}
	for _, o := range res.Unplaced {
		reasons[o.Reason]++
	}
	assert.Equal(t, map[models.UnplacedReason]int{models.ReasonNoFeasibleSlot: 1, models.ReasonNoTeacher: 1}, reasons)
}

func TestScheduleServiceGenerateFilters(t *testing.T) {
	svc := newTestScheduleService(t, twoGroupDataset(), nil)

	res, err := svc.Generate(context.Background(), dto.ScheduleFilter{GroupID: "G2"})
	require.NoError(t, err)
	assert.Empty(t, res.Sessions)
	assert.Len(t, res.Unplaced, 2)
	assert.Equal(t, 2, res.Summary.Sessions, "summary describes the whole run")

	res, err = svc.Generate(context.Background(), dto.ScheduleFilter{Day: "Mon", TeacherID: "T1"})
	require.NoError(t, err)
	assert.Len(t, res.Sessions, 2)
}

func TestScheduleServiceGenerateUsesCache(t *testing.T) {
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
	svc := newTestScheduleService(t, twoGroupDataset(), cache)

	first, err := svc.Generate(context.Background(), dto.ScheduleFilter{})
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, repo.setCalls)
	assert.Equal(t, time.Minute, repo.lastTTL)

	second, err := svc.Generate(context.Background(), dto.ScheduleFilter{})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Sessions, second.Sessions)
	assert.Equal(t, 1, repo.setCalls)
}

func TestScheduleServiceGenerateWithoutDataset(t *testing.T) {
	svc := newTestScheduleService(t, nil, nil)

	_, err := svc.Generate(context.Background(), dto.ScheduleFilter{})
	assert.ErrorIs(t, err, appErrors.ErrDatasetNotLoaded)
}
