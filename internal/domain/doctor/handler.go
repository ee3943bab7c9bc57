package doctor

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/listing"
	"github.com/clinicdesk/clinicdesk/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/doctors", h.ListDoctors)
	api.POST("/doctors", h.CreateDoctor)
	api.GET("/doctors/specializations", h.Specializations)
	api.GET("/doctors/:id", h.GetDoctor)
	api.PUT("/doctors/:id", h.UpdateDoctor)
	api.DELETE("/doctors/:id", h.DeleteDoctor)
}

// listResponse adds the active-doctor count of the filtered set to a page.
type listResponse struct {
	*pagination.Response
	Active int `json:"active"`
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) CreateDoctor(c echo.Context) error {
	var d Doctor
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateDoctor(c.Request().Context(), &d); err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	order, err := listing.ParseDirection(c.QueryParam("order"), listing.Asc)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sortBy := c.QueryParam("sort")
	if !ValidSortKey(sortBy) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sort key: "+sortBy)
	}
	items, err := h.svc.ListDoctors(c.Request().Context(), ListParams{
		Search:         c.QueryParam("q"),
		Specialization: c.QueryParam("specialization"),
		Status:         c.QueryParam("status"),
		SortBy:         sortBy,
		Order:          order,
	})
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, listResponse{
		Response: pagination.Page(items, pagination.FromContext(c)),
		Active:   CountActive(items),
	})
}

func (h *Handler) Specializations(c echo.Context) error {
	out, err := h.svc.Specializations(c.Request().Context())
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) UpdateDoctor(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var u Update
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := h.svc.UpdateDoctor(c.Request().Context(), id, &u)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteDoctor(c.Request().Context(), id); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
