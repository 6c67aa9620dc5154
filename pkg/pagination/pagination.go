package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultPageSize = 15
	MaxPageSize     = 100
)

// Params holds pagination parameters extracted from a request. Pages are
// zero-indexed and fixed-size.
type Params struct {
	Page int
	Size int
}

// FromContext extracts pagination parameters from the echo context. A
// non-positive defaultSize falls back to DefaultPageSize.
func FromContext(c echo.Context, defaultSize int) Params {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}

	size, _ := strconv.Atoi(c.QueryParam("size"))
	if size <= 0 {
		size = defaultSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 0 {
		page = 0
	}

	return Params{Page: page, Size: size}
}

// Offset returns the index of the first row on the page.
func (p Params) Offset() int {
	return p.Page * p.Size
}

// PageCount returns the number of pages needed for total rows.
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Response wraps a paginated API response.
type Response struct {
	Data      interface{} `json:"data"`
	Total     int         `json:"total"`
	Page      int         `json:"page"`
	PageSize  int         `json:"pageSize"`
	PageCount int         `json:"pageCount"`
	HasMore   bool        `json:"hasMore"`
}

func NewResponse(data interface{}, total int, p Params) *Response {
	return &Response{
		Data:      data,
		Total:     total,
		Page:      p.Page,
		PageSize:  p.Size,
		PageCount: PageCount(total, p.Size),
		HasMore:   p.HasNext(total),
	}
}

// HasNext returns true if there are more results after the current page.
func (p Params) HasNext(total int) bool {
	return p.Offset()+p.Size < total
}
