package medicine

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

type Handler struct {
	catalog *Catalog
}

func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/medicines", h.SearchMedicines)
	api.GET("/medicines/categories", h.Categories)
	api.GET("/medicines/:id", h.GetMedicine)
}

func (h *Handler) SearchMedicines(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.Search(c.QueryParam("q")))
}

func (h *Handler) GetMedicine(c echo.Context) error {
	m, err := h.catalog.Get(c.Param("id"))
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, h.catalog.Categories())
}
