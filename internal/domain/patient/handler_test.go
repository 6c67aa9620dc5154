package patient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

// listEnvelope mirrors the pagination envelope with a typed data field.
type listEnvelope struct {
	Data      ListPage `json:"data"`
	Total     int      `json:"total"`
	Page      int      `json:"page"`
	PageSize  int      `json:"pageSize"`
	PageCount int      `json:"pageCount"`
	HasMore   bool     `json:"hasMore"`
}

func newTestServer(repo Repository) *echo.Echo {
	e := echo.New()
	h := NewHandler(NewService(repo), 15)
	h.Register(e.Group("/patients"))
	return e
}

func TestHandlerListFirstPage(t *testing.T) {
	e := newTestServer(&mockRepo{rows: seedRows(620)})

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp listEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 620 {
		t.Errorf("total = %d, want 620", resp.Total)
	}
	if resp.PageCount != 42 {
		t.Errorf("pageCount = %d, want 42", resp.PageCount)
	}
	if !resp.HasMore {
		t.Error("expected hasMore on the first of 42 pages")
	}
	if len(resp.Data.Patients) != 15 {
		t.Errorf("patients = %d, want 15", len(resp.Data.Patients))
	}
	if resp.Data.VisibleRows != 10 {
		t.Errorf("visibleRows = %d, want 10 when collapsed", resp.Data.VisibleRows)
	}
	if len(resp.Data.Breadcrumb.Trail) != 2 {
		t.Errorf("breadcrumb trail = %v, want Home and Patient List", resp.Data.Breadcrumb.Trail)
	}
}

func TestHandlerListLastPage(t *testing.T) {
	e := newTestServer(&mockRepo{rows: seedRows(620)})

	req := httptest.NewRequest(http.MethodGet, "/patients?page=41", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp listEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data.Patients) != 5 {
		t.Errorf("last page patients = %d, want 5", len(resp.Data.Patients))
	}
	if resp.Page != 41 {
		t.Errorf("page = %d, want 41", resp.Page)
	}
	if resp.HasMore {
		t.Error("expected no more pages after the last page")
	}
}

func TestHandlerListExpanded(t *testing.T) {
	e := newTestServer(&mockRepo{rows: seedRows(620)})

	req := httptest.NewRequest(http.MethodGet, "/patients?expanded=true", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp listEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.VisibleRows != 15 {
		t.Errorf("visibleRows = %d, want full page when expanded", resp.Data.VisibleRows)
	}
}

func TestHandlerListRepoError(t *testing.T) {
	e := newTestServer(&mockRepo{err: fmt.Errorf("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
