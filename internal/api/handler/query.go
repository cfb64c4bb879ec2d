package handler

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// listQuery reads the select, sort, page and limit query params. Malformed
// numbers fall back to the defaults rather than failing the request.
func listQuery(c echo.Context) ports.ListQuery {
	q := ports.ListQuery{}
	if raw := c.QueryParam("select"); raw != "" {
		q.Select = strings.Split(raw, ",")
	}
	if raw := c.QueryParam("sort"); raw != "" {
		q.Sort = strings.Split(raw, ",")
	}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	q.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	return q.Normalize()
}

// paginate builds the next/prev links for the current window, or nil when the
// whole collection fits on one page.
func paginate(q ports.ListQuery, total int64) *pagination {
	p := &pagination{}
	if int64(q.Page*q.Limit) < total {
		p.Next = &pageRef{Page: q.Page + 1, Limit: q.Limit}
	}
	if q.Page > 1 {
		p.Prev = &pageRef{Page: q.Page - 1, Limit: q.Limit}
	}
	if p.Next == nil && p.Prev == nil {
		return nil
	}
	return p
}
