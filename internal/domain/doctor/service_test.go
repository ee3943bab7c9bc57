package doctor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/listing"
	"github.com/clinicdesk/clinicdesk/internal/platform/store"
)

var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestService() *Service {
	svc := NewService(NewRepoStore(store.NewMemoryStore()))
	svc.SetClock(func() time.Time { return fixedNow })
	return svc
}

func validDoctor(name, spec string) *Doctor {
	return &Doctor{
		Name:           name,
		Email:          "doc@clinic.test",
		Specialization: spec,
		Experience:     5,
		Availability: Availability{
			"monday": {Start: "09:00", End: "17:00", Available: true},
			"sunday": {Start: "10:00", End: "14:00", Available: false},
		},
	}
}

func mustCreate(t *testing.T, svc *Service, d *Doctor) *Doctor {
	t.Helper()
	if err := svc.CreateDoctor(context.Background(), d); err != nil {
		t.Fatalf("create %q: %v", d.Name, err)
	}
	return d
}

func TestCreateDoctor_Defaults(t *testing.T) {
	svc := newTestService()
	d := mustCreate(t, svc, &Doctor{Name: "Dr. Rao", Email: " Rao@Clinic.test ", Specialization: "Cardiology"})
	if d.ID == uuid.Nil {
		t.Error("expected ID")
	}
	if d.Status != StatusActive {
		t.Errorf("expected status active, got %q", d.Status)
	}
	if d.Email != "rao@clinic.test" {
		t.Errorf("expected normalized email, got %q", d.Email)
	}
	if d.Qualifications == nil || d.Availability == nil {
		t.Error("expected empty qualifications and availability, not nil")
	}
	if !d.CreatedAt.Equal(fixedNow) {
		t.Errorf("expected created_at from clock, got %v", d.CreatedAt)
	}
}

func TestCreateDoctor_Validation(t *testing.T) {
	tests := []struct {
		name string
		mod  func(d *Doctor)
	}{
		{"missing name", func(d *Doctor) { d.Name = "" }},
		{"missing email", func(d *Doctor) { d.Email = "" }},
		{"bad email", func(d *Doctor) { d.Email = "nobody" }},
		{"missing specialization", func(d *Doctor) { d.Specialization = " " }},
		{"negative experience", func(d *Doctor) { d.Experience = -1 }},
		{"bad status", func(d *Doctor) { d.Status = "retired" }},
		{"unknown weekday", func(d *Doctor) { d.Availability["funday"] = Slot{} }},
		{"bad time", func(d *Doctor) { d.Availability["monday"] = Slot{Start: "9am", End: "17:00", Available: true} }},
		{"start after end", func(d *Doctor) { d.Availability["monday"] = Slot{Start: "17:00", End: "09:00", Available: true} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()
			d := validDoctor("Dr. A", "Cardiology")
			tt.mod(d)
			var ve *apperr.ValidationError
			if err := svc.CreateDoctor(context.Background(), d); !errors.As(err, &ve) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateDoctor_UnavailableDayWithoutTimes(t *testing.T) {
	svc := newTestService()
	d := validDoctor("Dr. A", "Cardiology")
	d.Availability["saturday"] = Slot{}
	mustCreate(t, svc, d)
}

func TestUpdateDoctor(t *testing.T) {
	svc := newTestService()
	d := mustCreate(t, svc, validDoctor("Dr. A", "Cardiology"))

	status := StatusOnLeave
	exp := 9
	got, err := svc.UpdateDoctor(context.Background(), d.ID, &Update{Status: &status, Experience: &exp})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Status != StatusOnLeave || got.Experience != 9 || got.Name != "Dr. A" {
		t.Errorf("unexpected doctor after update: %+v", got)
	}

	bad := "vacation"
	if _, err := svc.UpdateDoctor(context.Background(), d.ID, &Update{Status: &bad}); err == nil {
		t.Error("expected validation error")
	}
	if _, err := svc.UpdateDoctor(context.Background(), uuid.New(), &Update{}); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDeleteDoctor(t *testing.T) {
	svc := newTestService()
	d := mustCreate(t, svc, validDoctor("Dr. A", "Cardiology"))
	if err := svc.DeleteDoctor(context.Background(), d.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetDoctor(context.Background(), d.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func seedDoctors(t *testing.T, svc *Service) {
	t.Helper()
	for _, spec := range []struct {
		name, spec, dept, status string
		exp                      int
	}{
		{"Dr. Sarah Johnson", "Cardiology", "Internal Medicine", StatusActive, 8},
		{"Dr. Michael Chen", "Orthopedics", "Surgery", StatusActive, 12},
		{"Dr. Emily Rodriguez", "Pediatrics", "Pediatrics", StatusActive, 6},
		{"Dr. James Wilson", "Neurology", "Neurology", StatusOnLeave, 15},
		{"Dr. Anil Kapoor", "Cardiology", "Internal Medicine", StatusInactive, 8},
	} {
		d := validDoctor(spec.name, spec.spec)
		d.Department = spec.dept
		d.Status = spec.status
		d.Experience = spec.exp
		mustCreate(t, svc, d)
	}
}

func TestListDoctors(t *testing.T) {
	svc := newTestService()
	seedDoctors(t, svc)

	tests := []struct {
		name   string
		params ListParams
		want   []string
	}{
		{"specialization", ListParams{Specialization: "Cardiology"}, []string{"Dr. Sarah Johnson", "Dr. Anil Kapoor"}},
		{"status", ListParams{Status: "on-leave"}, []string{"Dr. James Wilson"}},
		{"search department", ListParams{Search: "surgery"}, []string{"Dr. Michael Chen"}},
		{"experience desc is stable", ListParams{SortBy: "experience", Order: listing.Desc},
			[]string{"Dr. James Wilson", "Dr. Michael Chen", "Dr. Sarah Johnson", "Dr. Anil Kapoor", "Dr. Emily Rodriguez"}},
		{"name asc", ListParams{SortBy: "name", Status: "active"},
			[]string{"Dr. Emily Rodriguez", "Dr. Michael Chen", "Dr. Sarah Johnson"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListDoctors(context.Background(), tt.params)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d doctors, got %d", len(tt.want), len(got))
			}
			for i, d := range got {
				if d.Name != tt.want[i] {
					t.Errorf("position %d: expected %q, got %q", i, tt.want[i], d.Name)
				}
			}
		})
	}
}

func TestSpecializations(t *testing.T) {
	svc := newTestService()
	seedDoctors(t, svc)
	got, err := svc.Specializations(context.Background())
	if err != nil {
		t.Fatalf("specializations: %v", err)
	}
	want := []string{"Cardiology", "Neurology", "Orthopedics", "Pediatrics"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestCountActive(t *testing.T) {
	svc := newTestService()
	seedDoctors(t, svc)
	all, _ := svc.AllDoctors(context.Background())
	if n := CountActive(all); n != 3 {
		t.Errorf("expected 3 active, got %d", n)
	}
}

func TestDoctor_AvailableOn(t *testing.T) {
	d := validDoctor("Dr. A", "Cardiology")
	if !d.AvailableOn(time.Monday) {
		t.Error("expected available on monday")
	}
	if d.AvailableOn(time.Sunday) {
		t.Error("expected unavailable on sunday")
	}
	if d.AvailableOn(time.Tuesday) {
		t.Error("expected unavailable on an unlisted day")
	}
}
