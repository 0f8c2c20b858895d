package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Dhananjay-JSR/webhooky/internal/model"
	"github.com/Dhananjay-JSR/webhooky/internal/response"
)

const (
	defaultLimit = 100
	defaultSkip  = 0
)

// LogHandler serves captured history (GET /logs/:endpointId).
type LogHandler struct {
	Store Store
}

// List returns one page of records, newest first. limit defaults to 100 and
// has no upper bound (caller responsibility); skip defaults to 0.
// Non-numeric or negative values fall back to the defaults.
func (h *LogHandler) List(c echo.Context) error {
	endpointID := c.Param("endpointId")
	limit := intParam(c.QueryParam("limit"), defaultLimit)
	skip := intParam(c.QueryParam("skip"), defaultSkip)

	logs, total, ok := h.Store.QueryLogs(c.Request().Context(), endpointID, limit, skip)
	if !ok {
		return c.JSON(http.StatusServiceUnavailable, response.LogsUnavailable{
			Success: false,
			Error:   "Database unavailable - logs cannot be retrieved",
			Logs:    []model.CaptureRecord{},
			Total:   0,
		})
	}
	return c.JSON(http.StatusOK, response.LogPage{
		Success: true,
		Logs:    logs,
		Total:   total,
		Limit:   limit,
		Skip:    skip,
	})
}

func intParam(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
