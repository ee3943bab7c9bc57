package analytics

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/analytics", h.GetSummary)
}

// GetSummary returns the dashboard summary. The optional as_of query
// parameter (YYYY-MM-DD) moves the reference instant to the end of that day.
func (h *Handler) GetSummary(c echo.Context) error {
	ctx := c.Request().Context()
	asOf := c.QueryParam("as_of")
	if asOf == "" {
		s, err := h.svc.Current(ctx)
		if err != nil {
			return apperr.HTTP(err)
		}
		return c.JSON(http.StatusOK, s)
	}
	ref, err := EndOfDay(asOf, h.svc.Location())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	s, err := h.svc.AsOf(ctx, ref)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, s)
}
