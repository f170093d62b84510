// Package handlers implements the HTTP endpoints. Every list endpoint
// shares the same shape: a free-text search over declared fields, field
// filters from the remaining query parameters, then pagination.
package handlers

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fidalli/crm-backend/pkg/dashboard"
	"github.com/fidalli/crm-backend/pkg/filter"
)

// listParams builds the filter query and pagination bounds from the
// request. searchFields are the text-stage fields; filterKeys are the
// query parameters accepted as field filters for the collection.
func listParams(c echo.Context, searchFields, filterKeys []string, minChars int) (filter.Query, int, int) {
	q := filter.Query{
		Term:     c.QueryParam("search"),
		Fields:   searchFields,
		MinChars: minChars,
	}

	filters := make(map[string]any)
	for _, key := range filterKeys {
		if v := c.QueryParam(key); v != "" {
			filters[key] = v
		}
	}
	if len(filters) > 0 {
		q.Filters = filters
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return q, page, limit
}

// invalidateDashboard drops the cached overview after a write. Nil-safe
// so handlers work without a cache in tests.
func invalidateDashboard(ctx context.Context, d *dashboard.Service) {
	if d != nil {
		d.Invalidate(ctx)
	}
}
