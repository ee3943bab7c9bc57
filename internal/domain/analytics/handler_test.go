package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newTestHandler(in Input) (*Handler, *echo.Echo) {
	svc := NewService(&mockSource{in: in}, Options{})
	svc.SetClock(func() time.Time { return ref })
	return NewHandler(svc), echo.New()
}

type summaryBody struct {
	TotalAppointments int             `json:"total_appointments"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	MonthlyRevenue    decimal.Decimal `json:"monthly_revenue"`
	PatientGrowth     float64         `json:"patient_growth"`
	AppointmentTrends []TrendPoint    `json:"appointment_trends"`
}

func TestHandler_GetSummary(t *testing.T) {
	h, e := newTestHandler(Input{
		Appointments:  appts("2024-03-15", "completed"),
		Consultations: consultations(2),
	})
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := h.GetSummary(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var body summaryBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.TotalRevenue.Equal(decimal.NewFromInt(100)) || !body.MonthlyRevenue.Equal(decimal.NewFromInt(50)) {
		t.Errorf("unexpected revenue: %s", rec.Body.String())
	}
	if len(body.AppointmentTrends) != TrendDays || body.AppointmentTrends[TrendDays-1].Count != 1 {
		t.Errorf("unexpected trend: %+v", body.AppointmentTrends)
	}
}

func TestHandler_GetSummary_AsOf(t *testing.T) {
	h, e := newTestHandler(Input{Appointments: appts("2024-02-10", "completed", "2024-03-15", "completed")})
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?as_of=2024-02-10", nil), rec)
	if err := h.GetSummary(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var body summaryBody
	json.Unmarshal(rec.Body.Bytes(), &body)
	last := body.AppointmentTrends[TrendDays-1]
	if last.Date != "2024-02-10" || last.Count != 1 {
		t.Errorf("expected trend ending 2024-02-10 with 1, got %+v", last)
	}
	if !body.MonthlyRevenue.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected February revenue 50, got %s", body.MonthlyRevenue)
	}
}

func TestHandler_GetSummary_BadAsOf(t *testing.T) {
	h, e := newTestHandler(Input{})
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?as_of=yesterday", nil), httptest.NewRecorder())
	err := h.GetSummary(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_GetSummary_SourceError(t *testing.T) {
	svc := NewService(&mockSource{failOn: "appointments"}, Options{})
	h := NewHandler(svc)
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	err := h.GetSummary(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %v", err)
	}
}

func TestHandler_RegisterRoutes(t *testing.T) {
	h, e := newTestHandler(Input{})
	h.RegisterRoutes(e.Group("/api/v1"))
	for _, r := range e.Routes() {
		if r.Method == http.MethodGet && r.Path == "/api/v1/analytics" {
			return
		}
	}
	t.Error("GET /api/v1/analytics not registered")
}
