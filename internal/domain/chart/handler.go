package chart

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chartview/chartview/internal/view"
)

// ChartPage is the per-patient chart page payload.
type ChartPage struct {
	Breadcrumb   view.Breadcrumb    `json:"breadcrumb"`
	Demographics Demographics       `json:"demographics"`
	Encounters   []EncounterSummary `json:"encounters"`
	VisibleRows  int                `json:"visibleRows"`
}

// EncounterPage is the encounter detail page payload. VisibleRows carries
// the collapsed or expanded row count per section, keyed by tab.
type EncounterPage struct {
	Breadcrumb     view.Breadcrumb  `json:"breadcrumb"`
	Demographics   Demographics     `json:"demographics"`
	ActiveTab      view.Tab         `json:"activeTab"`
	Diagnoses      []Diagnosis      `json:"diagnoses"`
	Procedures     []Procedure      `json:"procedures"`
	ImagingReports []ImagingReport  `json:"imagingReports"`
	OrdersNotes    []OrderNote      `json:"ordersNotes"`
	HONotes        []HNONote        `json:"hoNotes"`
	VisibleRows    map[view.Tab]int `json:"visibleRows"`
}

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(g *echo.Group) {
	g.GET("/:patientId", h.GetChart)
	g.GET("/:patientId/:encounterId", h.GetEncounterDetail)
}

func pathID(c echo.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("invalid %s %q", name, raw))
	}
	return id, nil
}

// GetChart serves GET /patients/:patientId. An unknown patient redirects
// back to the list rather than rendering an error page.
func (h *Handler) GetChart(c echo.Context) error {
	patientNum, err := pathID(c, "patientId")
	if err != nil {
		return err
	}

	row, err := h.svc.GetChart(c.Request().Context(), patientNum)
	if errors.Is(err, ErrNotFound) {
		return c.Redirect(http.StatusFound, "/patients")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "patient chart unavailable")
	}

	limit := view.NewRowLimit(view.DefaultCollapsedRows)
	limit.Expanded = c.QueryParam("expanded") == "true"

	encounters := row.Summaries()
	return c.JSON(http.StatusOK, ChartPage{
		Breadcrumb:   view.ForPath(fmt.Sprintf("/patients/%d", patientNum)),
		Demographics: row.DemographicsRow.Demographics(time.Now()),
		Encounters:   encounters,
		VisibleRows:  limit.Visible(len(encounters)),
	})
}

// GetEncounterDetail serves GET /patients/:patientId/:encounterId. The
// active tab comes from the "tab" query parameter and the "expanded"
// parameter holds a comma-separated list of section keys whose row limit is
// lifted. Sections keep their expansion independently of the active tab.
func (h *Handler) GetEncounterDetail(c echo.Context) error {
	patientNum, err := pathID(c, "patientId")
	if err != nil {
		return err
	}
	encounterNum, err := pathID(c, "encounterId")
	if err != nil {
		return err
	}

	row, err := h.svc.GetEncounterDetail(c.Request().Context(), patientNum, encounterNum)
	if errors.Is(err, ErrNotFound) {
		return c.Redirect(http.StatusFound, "/patients")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "encounter detail unavailable")
	}

	expanded := expandedSections(c.QueryParam("expanded"))

	page := EncounterPage{
		Breadcrumb:     view.ForPath(fmt.Sprintf("/patients/%d/%d", patientNum, encounterNum)),
		Demographics:   row.DemographicsRow.Demographics(time.Now()),
		ActiveTab:      view.ActiveTab(c.QueryParam("tab")),
		Diagnoses:      row.DiagnosisList(),
		Procedures:     row.ProcedureList(),
		ImagingReports: row.ImagingReportList(),
		OrdersNotes:    row.OrderNoteList(),
		HONotes:        row.HNONoteList(),
	}

	page.VisibleRows = map[view.Tab]int{
		view.TabDiagnosis:      sectionRows(len(page.Diagnoses), expanded[view.TabDiagnosis]),
		view.TabProcedures:     sectionRows(len(page.Procedures), expanded[view.TabProcedures]),
		view.TabImagingReports: sectionRows(len(page.ImagingReports), expanded[view.TabImagingReports]),
		view.TabOrdersNotes:    sectionRows(len(page.OrdersNotes), expanded[view.TabOrdersNotes]),
		view.TabHONotes:        sectionRows(len(page.HONotes), expanded[view.TabHONotes]),
	}
	return c.JSON(http.StatusOK, page)
}

func expandedSections(param string) map[view.Tab]bool {
	out := make(map[view.Tab]bool)
	for _, key := range strings.Split(param, ",") {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[view.Tab(key)] = true
	}
	return out
}

func sectionRows(n int, expanded bool) int {
	limit := view.NewRowLimit(view.DefaultCollapsedRows)
	limit.Expanded = expanded
	return limit.Visible(n)
}
