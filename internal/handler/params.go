package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/velobooks/velobooks-backend/internal/util"
)

// parseDateRangeParams reads optional startDate/endDate query params
// (YYYY-MM-DD). The end date is widened to the end of its day so the range
// stays inclusive.
func parseDateRangeParams(c echo.Context) (start, end *time.Time, errField string) {
	if s := c.QueryParam("startDate"); s != "" {
		t, err := util.ParseDate(s)
		if err != nil {
			return nil, nil, "startDate"
		}
		start = &t
	}
	if s := c.QueryParam("endDate"); s != "" {
		t, err := util.ParseDate(s)
		if err != nil {
			return nil, nil, "endDate"
		}
		t = util.EndOfDay(t)
		end = &t
	}
	return start, end, ""
}

// parseIDParam reads a positive int32 path parameter
func parseIDParam(c echo.Context, name string) (int32, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

// parseQueryID parses a positive int32 from a raw query value
func parseQueryID(raw string) (int32, bool) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

// parsePaginationParams reads page/pageSize query params, zero when absent
func parsePaginationParams(c echo.Context) (page, pageSize int32) {
	if raw := c.QueryParam("page"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 {
			page = int32(v)
		}
	}
	if raw := c.QueryParam("pageSize"); raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 32); err == nil && v > 0 {
			pageSize = int32(v)
		}
	}
	return page, pageSize
}
