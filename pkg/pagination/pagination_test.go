package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, target string, defaultSize int) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return FromContext(e.NewContext(req, rec), defaultSize)
}

func TestFromContext_Defaults(t *testing.T) {
	p := paramsFor(t, "/patients", 15)
	if p.Page != 0 || p.Size != 15 {
		t.Errorf("expected page 0 size 15, got %+v", p)
	}
}

func TestFromContext_Explicit(t *testing.T) {
	p := paramsFor(t, "/patients?page=3&size=25", 15)
	if p.Page != 3 || p.Size != 25 {
		t.Errorf("expected page 3 size 25, got %+v", p)
	}
}

func TestFromContext_ClampsBadValues(t *testing.T) {
	p := paramsFor(t, "/patients?page=-2&size=10000", 15)
	if p.Page != 0 {
		t.Errorf("expected negative page clamped to 0, got %d", p.Page)
	}
	if p.Size != MaxPageSize {
		t.Errorf("expected size clamped to %d, got %d", MaxPageSize, p.Size)
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct {
		total, size, want int
	}{
		{620, 15, 42}, // 620 patients at 15 per page
		{620, 10, 62},
		{15, 15, 1},
		{16, 15, 2},
		{0, 15, 0},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := PageCount(tc.total, tc.size); got != tc.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestOffset_LastPartialPage(t *testing.T) {
	// 620 patients, page size 15: the last page (index 41) starts at 615
	// and holds 5 rows.
	p := Params{Page: 41, Size: 15}
	if p.Offset() != 615 {
		t.Errorf("expected offset 615, got %d", p.Offset())
	}
}

func TestHasNext(t *testing.T) {
	p := Params{Page: 0, Size: 15}
	if !p.HasNext(620) {
		t.Error("expected first page to have a next page")
	}

	p = Params{Page: 41, Size: 15}
	if p.HasNext(620) {
		t.Error("expected last page to have no next page")
	}
}

func TestNewResponse(t *testing.T) {
	resp := NewResponse([]int{1, 2, 3}, 620, Params{Page: 2, Size: 15})
	if resp.Total != 620 || resp.Page != 2 || resp.PageSize != 15 || resp.PageCount != 42 {
		t.Errorf("unexpected response meta: %+v", resp)
	}
	if !resp.HasMore {
		t.Error("expected hasMore on a middle page")
	}

	resp = NewResponse([]int{1}, 620, Params{Page: 41, Size: 15})
	if resp.HasMore {
		t.Error("expected no more pages after the last page")
	}
}
