package background

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"mostruario/internal/config"
	"mostruario/internal/services"
	"mostruario/pkg/logger"
)

const (
	CatalogRefreshJob   = "catalog-refresh"
	ImageDiagnosticsJob = "image-diagnostics"
	SummaryRefreshJob   = "summary-refresh"
)

// ErrJobNotFound is returned for names that are not scheduled
var ErrJobNotFound = errors.New("job not found")

// JobScheduler runs the periodic catalog maintenance jobs
type JobScheduler struct {
	scheduler  gocron.Scheduler
	catalogSvc services.CatalogService
	log        *logger.Logger
	jobs       map[string]gocron.Job
	mu         sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
}

// NewJobScheduler creates a scheduler and registers the jobs enabled in cfg.
// A zero interval leaves the job out.
func NewJobScheduler(catalogSvc services.CatalogService, cfg config.JobsConfig, log *logger.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	js := &JobScheduler{
		scheduler:  scheduler,
		catalogSvc: catalogSvc,
		log:        log,
		jobs:       make(map[string]gocron.Job),
		ctx:        ctx,
		cancel:     cancel,
	}

	if err := js.registerJobs(cfg); err != nil {
		cancel()
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	js.log.Info("starting background job scheduler", "jobs", js.jobNames())
	js.scheduler.Start()
}

// Stop stops the job scheduler and waits for running jobs
func (js *JobScheduler) Stop() error {
	js.log.Info("stopping background job scheduler")
	js.cancel()
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs(cfg config.JobsConfig) error {
	if cfg.RefreshInterval > 0 {
		if err := js.AddJob(CatalogRefreshJob, cfg.RefreshInterval, js.refreshCatalog); err != nil {
			return err
		}
	}
	if cfg.DiagnosticsInterval > 0 {
		if err := js.AddJob(ImageDiagnosticsJob, cfg.DiagnosticsInterval, js.reportImageDiagnostics); err != nil {
			return err
		}
	}
	js.log.Debug("registered background jobs", "count", len(js.jobs))
	return nil
}

// refreshCatalog reloads the CSV so requests after a file change do not wait for the memo TTL
func (js *JobScheduler) refreshCatalog(ctx context.Context) error {
	return js.catalogSvc.Refresh(ctx)
}

// reportImageDiagnostics logs how images have been resolved since start
func (js *JobScheduler) reportImageDiagnostics(ctx context.Context) error {
	diag := js.catalogSvc.Diagnostics(ctx)
	if diag.LoadError != "" {
		js.log.Warn("catalog unavailable during diagnostics", "source", diag.Source, "error", diag.LoadError)
		return nil
	}

	fields := []interface{}{
		"source", diag.Source,
		"rows", diag.Rows,
		"snapshot", diag.SnapshotID,
		"local", diag.Images.Local,
		"remote", diag.Images.Remote,
		"placeholder", diag.Images.Placeholder,
	}
	if diag.Images.Unresolved() > 0 {
		js.log.Warn("catalog images falling back to placeholder", fields...)
		return nil
	}
	js.log.Info("catalog image diagnostics", fields...)
	return nil
}

// AddJob schedules task every interval under name. task receives a context that is
// cancelled when the scheduler shuts down. Runs never overlap.
func (js *JobScheduler) AddJob(name string, interval time.Duration, task func(ctx context.Context) error) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	if _, exists := js.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func(ctx context.Context) {
			start := time.Now()
			if err := task(ctx); err != nil {
				js.log.Error("background job failed", "job", name, "error", err)
				return
			}
			js.log.Debug("background job completed", "job", name, "duration", time.Since(start))
		}, js.ctx),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", name, err)
	}

	js.jobs[name] = job
	return nil
}

// RunJob triggers a scheduled job immediately, outside its interval
func (js *JobScheduler) RunJob(name string) error {
	js.mu.RLock()
	job, exists := js.jobs[name]
	js.mu.RUnlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return job.RunNow()
}

// JobStatus describes one scheduled job
type JobStatus struct {
	Name    string    `json:"name"`
	LastRun time.Time `json:"last_run"`
	NextRun time.Time `json:"next_run"`
}

// GetJobStatus returns the scheduled jobs ordered by name
func (js *JobScheduler) GetJobStatus() []JobStatus {
	js.mu.RLock()
	defer js.mu.RUnlock()

	statuses := make([]JobStatus, 0, len(js.jobs))
	for name, job := range js.jobs {
		status := JobStatus{Name: name}
		if last, err := job.LastRun(); err == nil {
			status.LastRun = last
		}
		if next, err := job.NextRun(); err == nil {
			status.NextRun = next
		}
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })
	return statuses
}

func (js *JobScheduler) jobNames() []string {
	statuses := js.GetJobStatus()
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.Name)
	}
	return names
}
