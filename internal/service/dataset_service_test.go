package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/class-scheduler-api/internal/models"
	appErrors "github.com/noah-isme/class-scheduler-api/pkg/errors"
)

type stubDatasetSource struct {
	dataset *models.Dataset
	err     error
	calls   int
}

func (s *stubDatasetSource) Load(ctx context.Context) (*models.Dataset, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	copied := *s.dataset
	return &copied, nil
}

func (s *stubDatasetSource) Source() string { return "stub" }

type memoryCacheRepo struct {
	data     map[string][]byte
	deleted  []string
	getErr   error
	setErr   error
	setCalls int
	lastTTL  time.Duration
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{data: make(map[string][]byte)}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.setCalls++
	m.lastTTL = ttl
	if m.setErr != nil {
		return m.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	m.deleted = append(m.deleted, pattern)
	for key := range m.data {
		delete(m.data, key)
	}
	return nil
}

func sampleDataset() *models.Dataset {
	return &models.Dataset{
		Teachers:      []models.Teacher{{ID: "T1", Name: "Alice"}},
		Rooms:         []models.Room{{ID: "R1", Name: "101", Type: "Theory"}},
		Groups:        []models.StudentGroup{{ID: "G1", Name: "CS-1", Advisor: "Dr. X"}},
		Subjects:      []models.Subject{{ID: "S1", Name: "Programming", Theory: 2}},
		Teaches:       []models.TeachAssignment{{SubjectID: "S1", TeacherID: "T1"}},
		Registrations: []models.Registration{{GroupID: "G1", SubjectID: "S1"}},
		Timeslots: []models.Timeslot{
			{ID: 1, Day: "Mon", Period: 1, Start: "08:00", End: "08:50"},
			{ID: 2, Day: "Mon", Period: 2, Start: "09:00", End: "09:50"},
			{ID: 3, Day: "Mon", Period: 3, Start: "10:00", End: "10:50"},
		},
	}
}

func TestDatasetServiceSnapshotBeforeLoad(t *testing.T) {
	svc := NewDatasetService(&stubDatasetSource{dataset: sampleDataset()}, nil, nil, zap.NewNop())

	_, err := svc.Snapshot()
	assert.ErrorIs(t, err, appErrors.ErrDatasetNotLoaded)
	assert.False(t, svc.Ready())
}

func TestDatasetServiceReloadPublishesVersion(t *testing.T) {
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
	svc := NewDatasetService(&stubDatasetSource{dataset: sampleDataset()}, cache, NewMetricsService(), zap.NewNop())

	first, err := svc.Reload(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, first.Version)
	assert.Equal(t, "stub", first.Source)
	assert.False(t, first.LoadedAt.IsZero())

	second, err := svc.Reload(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.Version, second.Version)

	current, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Same(t, second, current)
	assert.True(t, svc.Ready())
	assert.Equal(t, []string{schedulesCachePattern, schedulesCachePattern}, repo.deleted)
}

func TestDatasetServiceReloadFailureKeepsPrevious(t *testing.T) {
	source := &stubDatasetSource{dataset: sampleDataset()}
	svc := NewDatasetService(source, nil, nil, nil)

	loaded, err := svc.Reload(context.Background())
	require.NoError(t, err)

	source.err = errors.New("subject.csv line 3: column theory: invalid integer \"x\"")
	_, err = svc.Reload(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDatasetInvalid.Code, appErrors.FromError(err).Code)

	current, err := svc.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, loaded.Version, current.Version)
}

func TestDatasetServiceNotifiesReloadListeners(t *testing.T) {
	source := &stubDatasetSource{dataset: sampleDataset()}
	svc := NewDatasetService(source, nil, nil, nil)

	var seen []string
	svc.OnReload(func(ds *models.Dataset) { seen = append(seen, ds.Version) })

	loaded, err := svc.Reload(context.Background())
	require.NoError(t, err)

	source.err = errors.New("boom")
	_, _ = svc.Reload(context.Background())

	assert.Equal(t, []string{loaded.Version}, seen)
}
