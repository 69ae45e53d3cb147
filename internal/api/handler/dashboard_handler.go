package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobber/portal-gateway/internal/core/domain"
	"github.com/jobber/portal-gateway/internal/core/ports"
)

// DashboardHandler serves the role-conditional dashboard.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

type dashboardResponse struct {
	ProfileAvailable bool                 `json:"profileAvailable"`
	Profile          *domain.Profile      `json:"profile,omitempty"`
	Employer         bool                 `json:"employer"`
	Jobs             []domain.Job         `json:"jobs"`
	Applications     []domain.Application `json:"applications"`
	// Actions lists what the client may offer; the fallback state offers
	// logout only.
	Actions []string `json:"actions"`
}

func emptyDashboardResponse() dashboardResponse {
	return dashboardResponse{
		Jobs:         []domain.Job{},
		Applications: []domain.Application{},
		Actions:      []string{"logout"},
	}
}

// Overview handles GET /dashboard.
//
// @Summary      Role-conditional dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /dashboard [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	view, err := h.service.Overview(c.Request().Context(), session)
	if err != nil {
		// Unresolvable profile: never render stale role data. The fallback
		// state offers nothing but logout.
		if errors.Is(err, domain.ErrProfileUnavailable) {
			return c.JSON(http.StatusOK, emptyDashboardResponse())
		}
		return err
	}

	resp := emptyDashboardResponse()
	resp.ProfileAvailable = true
	resp.Profile = view.Profile
	resp.Employer = view.Employer
	if view.Employer {
		if view.Jobs != nil {
			resp.Jobs = view.Jobs
		}
		resp.Actions = append(resp.Actions, "post-job")
	} else if view.Applications != nil {
		resp.Applications = view.Applications
	}

	return c.JSON(http.StatusOK, resp)
}
