package task

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
	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks/stats", h.TaskStats)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.POST("/tasks/:id/toggle", h.ToggleTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
}

// -- REST --

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func (h *Handler) CreateTask(c echo.Context) error {
	var t Task
	if err := c.Bind(&t); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateTask(c.Request().Context(), &t); err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	t, err := h.svc.GetTask(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) ListTasks(c echo.Context) error {
	order, err := listing.ParseDirection(c.QueryParam("order"), listing.Asc)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sortBy := c.QueryParam("sort")
	if !ValidSortKey(sortBy) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sort key: "+sortBy)
	}
	status := c.QueryParam("status")
	if !ValidStatusFilter(status) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter: "+status)
	}
	items, err := h.svc.ListTasks(c.Request().Context(), ListParams{
		Search: c.QueryParam("q"),
		Status: status,
		SortBy: sortBy,
		Order:  order,
	})
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.Page(items, pagination.FromContext(c)))
}

func (h *Handler) TaskStats(c echo.Context) error {
	st, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var u Update
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t, err := h.svc.UpdateTask(c.Request().Context(), id, &u)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) ToggleTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	t, err := h.svc.ToggleTask(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteTask(c.Request().Context(), id); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
