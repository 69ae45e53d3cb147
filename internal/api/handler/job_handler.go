package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jobber/portal-gateway/internal/api/metrics"
	"github.com/jobber/portal-gateway/internal/core/domain"
	"github.com/jobber/portal-gateway/internal/core/ports"
)

// JobHandler handles job browsing, posting and applications.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// List handles GET /jobs, the public job board.
//
// @Summary      List open jobs
// @Tags         jobs
// @Produce      json
// @Success      200  {array}   domain.Job
// @Failure      502  {object}  map[string]string
// @Router       /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	jobs, err := h.service.Browse(c.Request().Context())
	if err != nil {
		return err
	}
	if jobs == nil {
		jobs = []domain.Job{}
	}
	return c.JSON(http.StatusOK, jobs)
}

// Get handles GET /jobs/:id.
//
// @Summary      Get one job listing
// @Tags         jobs
// @Produce      json
// @Param        id   path      int  true  "Job id"
// @Success      200  {object}  domain.Job
// @Failure      404  {object}  map[string]string
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	id, err := jobID(c)
	if err != nil {
		return err
	}

	job, err := h.service.Detail(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, job)
}

type createJobRequest struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description" validate:"required"`
	Location    string `json:"location" form:"location" validate:"required"`
	Salary      string `json:"salary" form:"salary" validate:"required"`
}

// Create handles POST /jobs. Route-level RBAC already requires the employer
// role; the service re-validates it regardless.
//
// @Summary      Post a new job
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      createJobRequest  true  "Listing details"
// @Success      201   {object}  domain.Job
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.service.Post(c.Request().Context(), session, domain.NewJobInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Salary:      req.Salary,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, job)
}

// Apply handles POST /jobs/:id/apply.
//
// @Summary      Apply to a job
// @Tags         jobs
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      int  true  "Job id"
// @Success      201  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /jobs/{id}/apply [post]
func (h *JobHandler) Apply(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	id, err := jobID(c)
	if err != nil {
		return err
	}

	if err := h.service.Apply(c.Request().Context(), session, id); err != nil {
		if errors.Is(err, domain.ErrDuplicateApply) {
			metrics.ApplyDedupTotal.WithLabelValues("blocked").Inc()
		}
		return err
	}

	metrics.ApplyDedupTotal.WithLabelValues("acquired").Inc()
	return c.JSON(http.StatusCreated, map[string]string{"status": "applied"})
}

func jobID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid job id")
	}
	return id, nil
}
