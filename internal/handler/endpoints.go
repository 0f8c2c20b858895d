package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"github.com/Dhananjay-JSR/webhooky/internal/response"
)

// idLength matches the original nanoid(12) token format.
const idLength = 12

// EndpointHandler is the endpoint registry (POST/GET /endpoints).
type EndpointHandler struct {
	Store  Store
	Logger zerolog.Logger
}

type createEndpointRequest struct {
	Name string `json:"name"`
}

// Create mints a fresh endpoint id and records it best-effort. Creation
// never hard-fails: an unreadable body counts as empty, and a down store
// yields the id with a warning instead of an error. A generated id is valid
// for ingestion whether or not it was durably recorded.
func (h *EndpointHandler) Create(c echo.Context) error {
	var req createEndpointRequest
	if err := c.Bind(&req); err != nil {
		req = createEndpointRequest{}
	}

	id := newID()
	ep, ok := h.Store.CreateEndpoint(c.Request().Context(), id, req.Name)
	if !ok {
		h.Logger.Warn().Str("endpoint_id", id).Msg("endpoint created without persistence")
		return c.JSON(http.StatusOK, response.EndpointFallback{
			ID:        id,
			Warning:   "Database unavailable - requests will be accepted but not logged",
			CreatedAt: ep.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, ep)
}

// Lookup returns the stored endpoint, or a virtual placeholder when the id
// is unknown or the store cannot answer (GET /endpoints?id=).
func (h *EndpointHandler) Lookup(c echo.Context) error {
	id := c.QueryParam("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, response.Error{Error: "Endpoint ID required"})
	}

	ep, _ := h.Store.GetEndpoint(c.Request().Context(), id)
	if ep == nil {
		return c.JSON(http.StatusOK, response.VirtualEndpoint{ID: id, IsVirtual: true})
	}
	return c.JSON(http.StatusOK, ep)
}

func newID() string {
	id, err := gonanoid.New(idLength)
	if err != nil {
		// entropy failure; a trimmed uuid still satisfies the token shape
		return uuid.NewString()[:idLength]
	}
	return id
}
