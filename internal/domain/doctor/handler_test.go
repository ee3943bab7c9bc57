package doctor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	return NewHandler(newTestService()), echo.New()
}

// -- REST Handler Tests --

func TestHandler_CreateDoctor(t *testing.T) {
	h, e := newTestHandler()
	body := `{"name":"Dr. Rao","email":"rao@clinic.test","specialization":"Cardiology",
		"availability":{"monday":{"start":"09:00","end":"17:00","available":true}}}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.CreateDoctor(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	var got Doctor
	json.Unmarshal(rec.Body.Bytes(), &got)
	if !got.Availability["monday"].Available {
		t.Errorf("expected monday availability in response: %s", rec.Body.String())
	}
}

func TestHandler_CreateDoctor_Invalid(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Dr. Rao"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := h.CreateDoctor(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_GetDoctor_NotFound(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())
	err := h.GetDoctor(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_ListDoctors(t *testing.T) {
	h, e := newTestHandler()
	seedDoctors(t, h.svc)

	req := httptest.NewRequest(http.MethodGet, "/?specialization=Cardiology", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.ListDoctors(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Data   []Doctor `json:"data"`
		Total  int      `json:"total"`
		Active int      `json:"active"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 || resp.Active != 1 || len(resp.Data) != 2 {
		t.Errorf("unexpected response: %s", rec.Body.String())
	}
}

func TestHandler_ListDoctors_BadSort(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/?sort=email", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.ListDoctors(c); err == nil {
		t.Error("expected error")
	}
}

func TestHandler_Specializations(t *testing.T) {
	h, e := newTestHandler()
	seedDoctors(t, h.svc)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Specializations(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []string
	json.Unmarshal(rec.Body.Bytes(), &got)
	if len(got) != 4 {
		t.Errorf("expected 4 specializations, got %v", got)
	}
}

func TestHandler_UpdateAndDeleteDoctor(t *testing.T) {
	h, e := newTestHandler()
	d := mustCreate(t, h.svc, validDoctor("Dr. A", "Cardiology"))

	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"department":"Cardiac Care"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(d.ID.String())
	if err := h.UpdateDoctor(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(d.ID.String())
	if err := h.DeleteDoctor(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}
