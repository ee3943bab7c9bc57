package medicine

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
)

func builtin(t *testing.T) *Catalog {
	t.Helper()
	c, err := Builtin()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}

func TestBuiltin(t *testing.T) {
	c := builtin(t)
	if c.Len() != 28 {
		t.Errorf("expected 28 medicines, got %d", c.Len())
	}
}

func TestNewCatalog_Invalid(t *testing.T) {
	if _, err := NewCatalog([]Medicine{{ID: "1", Name: "A"}, {ID: "1", Name: "B"}}); err == nil {
		t.Error("expected duplicate id error")
	}
	if _, err := NewCatalog([]Medicine{{ID: "1"}}); err == nil {
		t.Error("expected missing name error")
	}
}

func TestSearch(t *testing.T) {
	c := builtin(t)
	tests := []struct {
		query string
		want  []string
	}{
		{"", nil},
		{"   ", nil},
		{"para", []string{"Paracetamol"}},
		{"acetaminophen", []string{"Paracetamol"}},
		{"  INSULIN ", []string{"Insulin Glargine"}},
		{"antibiotic", []string{"Amoxicillin", "Azithromycin", "Ciprofloxacin", "Cephalexin"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := c.Search(tt.query)
			if got == nil {
				t.Fatal("expected non-nil result")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %d hits", tt.want, len(got))
			}
			for i, name := range tt.want {
				if got[i].Name != name {
					t.Errorf("position %d: expected %q, got %q", i, name, got[i].Name)
				}
			}
		})
	}
}

func TestSearch_Limit(t *testing.T) {
	c := builtin(t)
	// "i" occurs in most names
	got := c.Search("i")
	if len(got) != MaxResults {
		t.Fatalf("expected %d hits, got %d", MaxResults, len(got))
	}
	if got[0].ID != "1" {
		t.Errorf("expected catalog order, first hit %q", got[0].Name)
	}
}

func TestGet(t *testing.T) {
	c := builtin(t)
	m, err := c.Get("22")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if m.Name != "Hydrocortisone" || m.Form != "cream" {
		t.Errorf("unexpected medicine: %+v", m)
	}
	if _, err := c.Get("99"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCategories(t *testing.T) {
	want := []string{"Antibiotic", "Cardiovascular", "Dermatology", "Diabetes",
		"Gastrointestinal", "Pain Relief", "Respiratory", "Vitamins"}
	got := builtin(t).Categories()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

// -- REST Handler Tests --

func TestHandler_SearchMedicines(t *testing.T) {
	h := NewHandler(builtin(t))
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?q=vitamin", nil), rec)
	if err := h.SearchMedicines(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got []Medicine
	json.Unmarshal(rec.Body.Bytes(), &got)
	if len(got) != 4 {
		t.Errorf("expected 4 vitamins, got %d", len(got))
	}
}

func TestHandler_GetMedicine_NotFound(t *testing.T) {
	h := NewHandler(builtin(t))
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("404")
	err := h.GetMedicine(c)
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
