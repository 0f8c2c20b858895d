package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Dhananjay-JSR/webhooky/internal/capture"
	"github.com/Dhananjay-JSR/webhooky/internal/response"
)

// HookHandler ingests webhook requests (ANY /hook/:id).
type HookHandler struct {
	Store  Store
	Logger zerolog.Logger
}

// Handle accepts every HTTP method and always acknowledges with 200,
// whatever the body, content type, or storage condition. Persistence is
// fire-and-forget: the response neither waits for nor reflects the append
// outcome.
func (h *HookHandler) Handle(c echo.Context) error {
	rec := capture.FromRequest(c.Param("id"), c.Request(), time.Now().UTC())

	// the request context dies with the response; the persist must outlive it
	go func() {
		if !h.Store.AppendLog(context.Background(), rec) {
			h.Logger.Warn().
				Str("endpoint_id", rec.EndpointID).
				Str("method", rec.Method).
				Msg("webhook capture not persisted")
		}
	}()

	return c.JSON(http.StatusOK, response.HookAck{
		Success:   true,
		Message:   "Webhook received",
		Timestamp: response.Timestamp(time.Now()),
	})
}
