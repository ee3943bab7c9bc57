package pagination

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params holds pagination parameters extracted from a request.
type Params struct {
	Limit  int
	Offset int
}

// FromContext reads limit/offset (or the _count/_offset aliases) from the
// query string, clamping limit to [1, MaxLimit].
func FromContext(c echo.Context) Params {
	limit := firstInt(c, "limit", "_count")
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	offset := firstInt(c, "offset", "_offset")
	if offset < 0 {
		offset = 0
	}
	return Params{Limit: limit, Offset: offset}
}

func firstInt(c echo.Context, names ...string) int {
	for _, name := range names {
		if v, err := strconv.Atoi(c.QueryParam(name)); err == nil && v != 0 {
			return v
		}
	}
	return 0
}

// Slice returns the page of items selected by p. The result shares the
// backing array with items.
func Slice[T any](items []T, p Params) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := p.Offset + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[p.Offset:end]
}

// Response wraps a paginated API response.
type Response struct {
	Data    interface{} `json:"data"`
	Total   int         `json:"total"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
	HasMore bool        `json:"has_more"`
}

func NewResponse(data interface{}, total, limit, offset int) *Response {
	return &Response{
		Data:    data,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}
}

// Page slices items according to p and wraps the page in a Response whose
// total is the unpaged length.
func Page[T any](items []T, p Params) *Response {
	return NewResponse(Slice(items, p), len(items), p.Limit, p.Offset)
}
