package appointment

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
	api.GET("/appointments", h.ListAppointments)
	api.POST("/appointments", h.CreateAppointment)
	api.GET("/appointments/:id", h.GetAppointment)
	api.PUT("/appointments/:id", h.UpdateAppointment)
	api.PATCH("/appointments/:id/status", h.UpdateStatus)
	api.DELETE("/appointments/:id", h.DeleteAppointment)

	api.GET("/consultations", h.ListConsultations)
	api.POST("/consultations", h.CreateConsultation)
	api.GET("/consultations/board", h.ConsultationBoard)
	api.GET("/consultations/:id", h.GetConsultation)
	api.PUT("/consultations/:id", h.UpdateConsultation)
	api.DELETE("/consultations/:id", h.DeleteConsultation)
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// uuidParam returns the canonical form of an optional UUID query parameter.
func uuidParam(c echo.Context, name string) (string, error) {
	v := c.QueryParam(name)
	if v == "" {
		return "", nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id.String(), nil
}

// -- Appointments --

func (h *Handler) CreateAppointment(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateAppointment(c.Request().Context(), &a); err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	a, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) ListAppointments(c echo.Context) error {
	order, err := listing.ParseDirection(c.QueryParam("order"), listing.Asc)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sortBy := c.QueryParam("sort")
	if !ValidAppointmentSortKey(sortBy) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid sort key: "+sortBy)
	}
	patientID, err := uuidParam(c, "patient_id")
	if err != nil {
		return err
	}
	doctorID, err := uuidParam(c, "doctor_id")
	if err != nil {
		return err
	}
	items, err := h.svc.ListAppointments(c.Request().Context(), AppointmentListParams{
		Search:    c.QueryParam("q"),
		Status:    c.QueryParam("status"),
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      c.QueryParam("date"),
		SortBy:    sortBy,
		Order:     order,
	})
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.Page(items, pagination.FromContext(c)))
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var u AppointmentUpdate
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.UpdateAppointment(c.Request().Context(), id, &u)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.UpdateStatus(c.Request().Context(), id, body.Status)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteAppointment(c.Request().Context(), id); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Consultations --

func consultationParams(c echo.Context) (ConsultationListParams, error) {
	order, err := listing.ParseDirection(c.QueryParam("order"), "")
	if err != nil {
		return ConsultationListParams{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	sortBy := c.QueryParam("sort")
	if !ValidConsultationSortKey(sortBy) {
		return ConsultationListParams{}, echo.NewHTTPError(http.StatusBadRequest, "invalid sort key: "+sortBy)
	}
	return ConsultationListParams{
		Search: c.QueryParam("q"),
		Status: c.QueryParam("status"),
		SortBy: sortBy,
		Order:  order,
	}, nil
}

func (h *Handler) CreateConsultation(c echo.Context) error {
	var cons Consultation
	if err := c.Bind(&cons); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateConsultation(c.Request().Context(), &cons); err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusCreated, cons)
}

func (h *Handler) GetConsultation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	v, err := h.svc.GetConsultation(c.Request().Context(), id)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) ListConsultations(c echo.Context) error {
	params, err := consultationParams(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListConsultations(c.Request().Context(), params)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, pagination.Page(items, pagination.FromContext(c)))
}

func (h *Handler) ConsultationBoard(c echo.Context) error {
	params, err := consultationParams(c)
	if err != nil {
		return err
	}
	b, err := h.svc.Board(c.Request().Context(), params)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) UpdateConsultation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var u ConsultationUpdate
	if err := c.Bind(&u); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	cons, err := h.svc.UpdateConsultation(c.Request().Context(), id, &u)
	if err != nil {
		return apperr.HTTP(err)
	}
	return c.JSON(http.StatusOK, cons)
}

func (h *Handler) DeleteConsultation(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteConsultation(c.Request().Context(), id); err != nil {
		return apperr.HTTP(err)
	}
	return c.NoContent(http.StatusNoContent)
}
