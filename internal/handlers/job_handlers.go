package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"mostruario/internal/jobs/background"
	"mostruario/pkg/logger"
)

// JobRunner lists and triggers background jobs
type JobRunner interface {
	JobStatusProvider
	RunJob(name string) error
}

type JobHandlers struct {
	jobs JobRunner
	log  *logger.Logger
}

func NewJobHandlers(jobs JobRunner, log *logger.Logger) *JobHandlers {
	return &JobHandlers{jobs: jobs, log: log}
}

// ListJobs returns the scheduled jobs with their last and next run
//
//	@Summary	List background jobs
//	@Tags		Operations
//	@Produce	json
//	@Success	200	{array}	background.JobStatus
//	@Router		/v1/jobs [get]
func (h *JobHandlers) ListJobs(c echo.Context) error {
	return c.JSON(http.StatusOK, h.jobs.GetJobStatus())
}

// RunJob triggers a job now
//
//	@Summary	Run a background job now
//	@Tags		Operations
//	@Produce	json
//	@Param		name	path		string	true	"Job name"
//	@Success	202		{object}	map[string]string
//	@Failure	404		{object}	map[string]string
//	@Router		/v1/jobs/{name}/run [post]
func (h *JobHandlers) RunJob(c echo.Context) error {
	name := c.Param("name")
	if err := h.jobs.RunJob(name); err != nil {
		if errors.Is(err, background.ErrJobNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Job not found")
		}
		h.log.Error("failed to trigger job", "job", name, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to trigger job")
	}

	h.log.Info("job triggered", "job", name)
	return c.JSON(http.StatusAccepted, map[string]string{
		"job":    name,
		"status": "triggered",
	})
}
