package background

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mostruario/internal/config"
	"mostruario/internal/models"
	"mostruario/pkg/logger"
)

type MockCatalogService struct {
	mock.Mock
	refreshes atomic.Int32
}

func (m *MockCatalogService) BuildView(ctx context.Context, criteria models.FilterCriteria) (*models.CatalogView, error) {
	args := m.Called(ctx, criteria)
	return args.Get(0).(*models.CatalogView), args.Error(1)
}

func (m *MockCatalogService) Options(ctx context.Context, code string) (models.FilterOptions, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(models.FilterOptions), args.Error(1)
}

func (m *MockCatalogService) Refresh(ctx context.Context) error {
	m.refreshes.Add(1)
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCatalogService) Diagnostics(ctx context.Context) models.CatalogDiagnostics {
	args := m.Called(ctx)
	return args.Get(0).(models.CatalogDiagnostics)
}

func (m *MockCatalogService) Ready(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestNewJobScheduler_RegistersEnabledJobs(t *testing.T) {
	svc := &MockCatalogService{}
	js, err := NewJobScheduler(svc, config.JobsConfig{RefreshInterval: time.Minute, DiagnosticsInterval: time.Hour}, logger.Nop())
	require.NoError(t, err)
	defer js.Stop()

	status := js.GetJobStatus()
	require.Len(t, status, 2)
	assert.Equal(t, CatalogRefreshJob, status[0].Name)
	assert.Equal(t, ImageDiagnosticsJob, status[1].Name)
}

func TestNewJobScheduler_ZeroIntervalDisablesJob(t *testing.T) {
	js, err := NewJobScheduler(&MockCatalogService{}, config.JobsConfig{RefreshInterval: time.Minute}, logger.Nop())
	require.NoError(t, err)
	defer js.Stop()

	status := js.GetJobStatus()
	require.Len(t, status, 1)
	assert.Equal(t, CatalogRefreshJob, status[0].Name)
}

func TestJobScheduler_RefreshRuns(t *testing.T) {
	svc := &MockCatalogService{}
	svc.On("Refresh", mock.Anything).Return(nil)
	js, err := NewJobScheduler(svc, config.JobsConfig{RefreshInterval: 20 * time.Millisecond}, logger.Nop())
	require.NoError(t, err)

	js.Start()
	assert.Eventually(t, func() bool { return svc.refreshes.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, js.Stop())
}

func TestJobScheduler_FailingJobKeepsRunning(t *testing.T) {
	svc := &MockCatalogService{}
	svc.On("Refresh", mock.Anything).Return(errors.New("catalogo.csv: permission denied"))
	js, err := NewJobScheduler(svc, config.JobsConfig{RefreshInterval: 20 * time.Millisecond}, logger.Nop())
	require.NoError(t, err)

	js.Start()
	assert.Eventually(t, func() bool { return svc.refreshes.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, js.Stop())
}

func TestJobScheduler_ReportImageDiagnostics(t *testing.T) {
	svc := &MockCatalogService{}
	svc.On("Diagnostics", mock.Anything).Return(models.CatalogDiagnostics{
		Source: "catalogo.csv",
		Rows:   3,
		Images: models.ResolverStats{Local: 1, Placeholder: 2},
	}).Once()
	svc.On("Diagnostics", mock.Anything).Return(models.CatalogDiagnostics{Source: "catalogo.csv", LoadError: "missing"}).Once()
	js, err := NewJobScheduler(svc, config.JobsConfig{}, logger.Nop())
	require.NoError(t, err)
	defer js.Stop()

	assert.NoError(t, js.reportImageDiagnostics(context.Background()))
	assert.NoError(t, js.reportImageDiagnostics(context.Background()))
	svc.AssertExpectations(t)
}

func TestJobScheduler_AddJob(t *testing.T) {
	js, err := NewJobScheduler(&MockCatalogService{}, config.JobsConfig{}, logger.Nop())
	require.NoError(t, err)
	defer js.Stop()

	task := func(ctx context.Context) error { return nil }
	require.NoError(t, js.AddJob("probe-cache-warmup", time.Hour, task))
	assert.Error(t, js.AddJob("probe-cache-warmup", time.Hour, task))
	assert.Len(t, js.GetJobStatus(), 1)
}

func TestJobScheduler_RunJob(t *testing.T) {
	svc := &MockCatalogService{}
	svc.On("Refresh", mock.Anything).Return(nil)
	js, err := NewJobScheduler(svc, config.JobsConfig{RefreshInterval: time.Hour}, logger.Nop())
	require.NoError(t, err)
	js.Start()
	defer js.Stop()

	require.NoError(t, js.RunJob(CatalogRefreshJob))
	assert.Eventually(t, func() bool { return svc.refreshes.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	assert.ErrorIs(t, js.RunJob("unknown"), ErrJobNotFound)
}
