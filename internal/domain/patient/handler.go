package patient

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chartview/chartview/internal/view"
	"github.com/chartview/chartview/pkg/pagination"
)

// ListPage is the patient-list page payload, carried in the data field of
// the pagination envelope.
type ListPage struct {
	Breadcrumb  view.Breadcrumb `json:"breadcrumb"`
	Patients    []Summary       `json:"patients"`
	VisibleRows int             `json:"visibleRows"`
}

type Handler struct {
	svc      *Service
	pageSize int
}

func NewHandler(svc *Service, pageSize int) *Handler {
	return &Handler{svc: svc, pageSize: pageSize}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("", h.List)
	g.GET("/", h.List)
}

// List serves GET /patients. Page selection comes from the "page" query
// parameter; "expanded=true" lifts the collapsed row limit.
func (h *Handler) List(c echo.Context) error {
	params := pagination.FromContext(c, h.pageSize)

	rows, total, err := h.svc.List(c.Request().Context(), params.Size, params.Offset())
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "patient list unavailable")
	}

	now := time.Now()
	patients := make([]Summary, 0, len(rows))
	for _, row := range rows {
		patients = append(patients, row.Summary(now))
	}

	limit := view.NewRowLimit(view.ListCollapsedRows)
	limit.Expanded = c.QueryParam("expanded") == "true"

	page := ListPage{
		Breadcrumb:  view.ForPath("/patients"),
		Patients:    patients,
		VisibleRows: limit.Visible(len(patients)),
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, params))
}
