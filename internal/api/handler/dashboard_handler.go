package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/medscript/clinical-records/internal/core/access"
	"github.com/medscript/clinical-records/internal/core/ports"
)

// DashboardHandler resolves the default route to the role-specific view and
// recomputes the derived statistics for it.
type DashboardHandler struct {
	records ports.RecordService
}

func NewDashboardHandler(records ports.RecordService) *DashboardHandler {
	return &DashboardHandler{records: records}
}

// Show returns the role's dashboard variant, its navigable routes, and the
// aggregate figures recomputed from the current store snapshot. The view is
// chosen by the capability table, never guessed by the view layer.
//
// @Summary      Role dashboard
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      403  {object}  errorResponse
// @Router       /dashboard [get]
func (h *DashboardHandler) Show(c echo.Context) error {
	cl, err := ctxClaims(c)
	if err != nil {
		return err
	}

	caps, err := access.CapabilitiesFor(cl.Role)
	if err != nil {
		return err
	}

	routes := make([]string, 0, len(caps.Routes))
	for _, r := range caps.Routes {
		routes = append(routes, string(r))
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		View:   string(caps.Dashboard),
		Routes: routes,
		Stats:  toOverviewResponse(h.records.Overview(time.Now())),
	})
}
