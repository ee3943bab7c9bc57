package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/listing"
)

// -- Mock Repository --

type mockTaskRepo struct {
	items []*Task
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{}
}

func (m *mockTaskRepo) Create(_ context.Context, t *Task) error {
	t.ID = uuid.New()
	cp := *t
	m.items = append(m.items, &cp)
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*Task, error) {
	for _, t := range m.items {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("task")
}

func (m *mockTaskRepo) Update(_ context.Context, t *Task) error {
	for i, existing := range m.items {
		if existing.ID == t.ID {
			cp := *t
			m.items[i] = &cp
			return nil
		}
	}
	return apperr.NotFound("task")
}

func (m *mockTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, t := range m.items {
		if t.ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("task")
}

func (m *mockTaskRepo) List(_ context.Context) ([]*Task, error) {
	out := make([]*Task, len(m.items))
	for i, t := range m.items {
		cp := *t
		out[i] = &cp
	}
	return out, nil
}

type failingRepo struct{ mockTaskRepo }

var errStore = errors.New("store unavailable")

func (f *failingRepo) List(context.Context) ([]*Task, error) { return nil, errStore }

var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestService() *Service {
	svc := NewService(newMockTaskRepo())
	svc.SetClock(func() time.Time { return fixedNow })
	return svc
}

func mustCreate(t *testing.T, svc *Service, tk *Task) *Task {
	t.Helper()
	if err := svc.CreateTask(context.Background(), tk); err != nil {
		t.Fatalf("create %q: %v", tk.Title, err)
	}
	return tk
}

// -- Create --

func TestCreateTask(t *testing.T) {
	svc := newTestService()
	doc := uuid.New()
	tk := mustCreate(t, svc, &Task{DoctorID: &doc, Title: "  Review charts ", DueDate: "2024-06-16"})
	if tk.ID == uuid.Nil {
		t.Error("expected ID")
	}
	if tk.Title != "Review charts" {
		t.Errorf("expected trimmed title, got %q", tk.Title)
	}
	if tk.Completed {
		t.Error("expected new task to be open")
	}
	if !tk.CreatedAt.Equal(fixedNow) {
		t.Errorf("expected created_at from clock, got %v", tk.CreatedAt)
	}
}

func TestCreateTask_NilDoctorCleared(t *testing.T) {
	svc := newTestService()
	nilID := uuid.Nil
	tk := mustCreate(t, svc, &Task{DoctorID: &nilID, Title: "x", DueDate: "2024-06-16"})
	if tk.DoctorID != nil {
		t.Errorf("expected doctor_id cleared, got %v", tk.DoctorID)
	}
}

func TestCreateTask_Validation(t *testing.T) {
	tests := []struct {
		name  string
		task  Task
		field string
	}{
		{"blank title", Task{Title: "   ", DueDate: "2024-06-16"}, "title"},
		{"missing due date", Task{Title: "x"}, "due_date"},
		{"bad due date", Task{Title: "x", DueDate: "next week"}, "due_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService()
			tk := tt.task
			err := svc.CreateTask(context.Background(), &tk)
			var ve *apperr.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, ve.Field)
			}
		})
	}
}

// -- Toggle / Update / Delete --

func TestToggleTask(t *testing.T) {
	svc := newTestService()
	tk := mustCreate(t, svc, &Task{Title: "x", DueDate: "2024-06-16"})

	got, err := svc.ToggleTask(context.Background(), tk.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !got.Completed {
		t.Error("expected completed after first toggle")
	}
	got, _ = svc.ToggleTask(context.Background(), tk.ID)
	if got.Completed {
		t.Error("expected open after second toggle")
	}
	if _, err := svc.ToggleTask(context.Background(), uuid.New()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUpdateTask(t *testing.T) {
	svc := newTestService()
	tk := mustCreate(t, svc, &Task{Title: "x", Description: "old", DueDate: "2024-06-16"})

	desc, due := "new", "2024-06-20T08:00:00Z"
	got, err := svc.UpdateTask(context.Background(), tk.ID, &Update{Description: &desc, DueDate: &due})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Description != "new" || got.DueDate != due || got.Title != "x" {
		t.Errorf("unexpected task: %+v", got)
	}

	bad := "someday"
	if _, err := svc.UpdateTask(context.Background(), tk.ID, &Update{DueDate: &bad}); err == nil {
		t.Error("expected validation error")
	}
}

func TestDeleteTask(t *testing.T) {
	svc := newTestService()
	tk := mustCreate(t, svc, &Task{Title: "x", DueDate: "2024-06-16"})
	if err := svc.DeleteTask(context.Background(), tk.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetTask(context.Background(), tk.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

// -- List / Stats --

func seedTasks(t *testing.T, svc *Service) []*Task {
	t.Helper()
	var out []*Task
	for i, spec := range []struct {
		title, desc, due string
		done             bool
	}{
		{"Review patient charts", "check histories", "2024-06-16T10:00:00Z", false},
		{"update medication dosages", "chronic patients", "2024-06-17T10:00:00Z", false},
		{"Prepare presentation", "conference slides", "2024-06-22", true},
		{"Follow up with patients", "discharged this week", "2024-06-14T10:00:00Z", false},
	} {
		svc.SetClock(func() time.Time { return fixedNow.Add(time.Duration(-i) * time.Hour) })
		tk := mustCreate(t, svc, &Task{Title: spec.title, Description: spec.desc, DueDate: spec.due})
		if spec.done {
			svc.ToggleTask(context.Background(), tk.ID)
		}
		out = append(out, tk)
	}
	svc.SetClock(func() time.Time { return fixedNow })
	return out
}

func TestListTasks(t *testing.T) {
	svc := newTestService()
	seeded := seedTasks(t, svc)
	review, update, prepare, follow := seeded[0].ID, seeded[1].ID, seeded[2].ID, seeded[3].ID

	tests := []struct {
		name   string
		params ListParams
		want   []uuid.UUID
	}{
		{"default due date asc", ListParams{}, []uuid.UUID{follow, review, update, prepare}},
		{"due date desc", ListParams{SortBy: "due_date", Order: listing.Desc}, []uuid.UUID{prepare, update, review, follow}},
		{"title ignores case", ListParams{SortBy: "title"}, []uuid.UUID{follow, prepare, review, update}},
		{"created asc", ListParams{SortBy: "created_at"}, []uuid.UUID{follow, prepare, update, review}},
		{"completed", ListParams{Status: "completed"}, []uuid.UUID{prepare}},
		{"pending", ListParams{Status: "pending", SortBy: "title", Order: listing.Desc}, []uuid.UUID{update, review, follow}},
		{"search description", ListParams{Search: "PATIENTS"}, []uuid.UUID{follow, update}},
		{"all", ListParams{Status: "all", SortBy: "created_at", Order: listing.Desc}, []uuid.UUID{review, update, prepare, follow}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListTasks(context.Background(), tt.params)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d tasks, got %d", len(tt.want), len(got))
			}
			for i := range tt.want {
				if got[i].ID != tt.want[i] {
					t.Errorf("position %d: expected %q, got %q", i, tt.want[i], got[i].Title)
				}
			}
		})
	}
}

func TestStats(t *testing.T) {
	svc := newTestService()
	seedTasks(t, svc)
	st, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Completed != 1 || st.Pending != 3 || st.Overdue != 1 {
		t.Errorf("unexpected stats: %+v", st)
	}
}

func TestListTasks_RepoError(t *testing.T) {
	svc := NewService(&failingRepo{})
	if _, err := svc.ListTasks(context.Background(), ListParams{}); !errors.Is(err, errStore) {
		t.Errorf("expected store error, got %v", err)
	}
	if _, err := svc.Stats(context.Background()); !errors.Is(err, errStore) {
		t.Errorf("expected store error, got %v", err)
	}
}

func TestValidators(t *testing.T) {
	for _, s := range []string{"", "all", "completed", "pending"} {
		if !ValidStatusFilter(s) {
			t.Errorf("expected status %q to be valid", s)
		}
	}
	if ValidStatusFilter("overdue") {
		t.Error("expected overdue to be rejected as a filter")
	}
	if ValidSortKey("priority") {
		t.Error("expected priority to be rejected as a sort key")
	}
}
