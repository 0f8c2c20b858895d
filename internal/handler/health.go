package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Dhananjay-JSR/webhooky/internal/response"
)

// HealthHandler reports service liveness (GET /health).
type HealthHandler struct {
	Store Store
}

// Health always answers 200; the database field reflects store
// reachability only.
func (h *HealthHandler) Health(c echo.Context) error {
	db := "disconnected"
	if h.Store.Health(c.Request().Context()) {
		db = "connected"
	}
	return c.JSON(http.StatusOK, response.Health{
		Status:    "ok",
		Database:  db,
		Timestamp: response.Timestamp(time.Now()),
	})
}
