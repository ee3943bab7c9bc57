package task

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/listing"
)

const (
	FilterAll       = "all"
	FilterCompleted = "completed"
	FilterPending   = "pending"
)

var validStatusFilters = map[string]bool{
	"":              true,
	FilterAll:       true,
	FilterCompleted: true,
	FilterPending:   true,
}

var validSortKeys = map[string]bool{
	"":           true,
	"due_date":   true,
	"created_at": true,
	"title":      true,
}

type ListParams struct {
	Search string
	Status string
	SortBy string
	Order  listing.Direction
}

type Service struct {
	tasks TaskRepository
	now   func() time.Time
}

func NewService(tasks TaskRepository) *Service {
	return &Service{tasks: tasks, now: time.Now}
}

// SetClock replaces the time source. Its location also resolves calendar-day
// due dates.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func ValidStatusFilter(status string) bool { return validStatusFilters[status] }

func ValidSortKey(key string) bool { return validSortKeys[key] }

func (s *Service) validate(t *Task) error {
	if t.Title == "" {
		return apperr.Invalid("title", "is required")
	}
	if t.DueDate == "" {
		return apperr.Invalid("due_date", "is required")
	}
	if _, err := ParseDue(t.DueDate, s.now().Location()); err != nil {
		return apperr.Invalid("due_date", "must be RFC 3339 or YYYY-MM-DD")
	}
	return nil
}

func normalize(t *Task) {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	t.DueDate = strings.TrimSpace(t.DueDate)
	if t.DoctorID != nil && *t.DoctorID == uuid.Nil {
		t.DoctorID = nil
	}
}

func (s *Service) CreateTask(ctx context.Context, t *Task) error {
	t.ID = uuid.Nil
	normalize(t)
	if err := s.validate(t); err != nil {
		return err
	}
	t.CreatedAt = s.now()
	return s.tasks.Create(ctx, t)
}

func (s *Service) GetTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	return s.tasks.GetByID(ctx, id)
}

func (s *Service) UpdateTask(ctx context.Context, id uuid.UUID, u *Update) (*Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.apply(t)
	normalize(t)
	if err := s.validate(t); err != nil {
		return nil, err
	}
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ToggleTask flips the completion flag.
func (s *Service) ToggleTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Completed = !t.Completed
	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return s.tasks.Delete(ctx, id)
}

func (s *Service) AllTasks(ctx context.Context) ([]*Task, error) {
	return s.tasks.List(ctx)
}

func (s *Service) comparator(key string) func(a, b *Task) int {
	loc := s.now().Location()
	switch key {
	case "", "due_date":
		return listing.By(func(t *Task) int64 {
			due, err := ParseDue(t.DueDate, loc)
			if err != nil {
				return 0
			}
			return due.UnixNano()
		})
	case "created_at":
		return func(a, b *Task) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case "title":
		return listing.By(func(t *Task) string { return strings.ToLower(t.Title) })
	}
	return nil
}

// ListTasks searches title and description and filters on completion. The
// default order is by due date, earliest first.
func (s *Service) ListTasks(ctx context.Context, params ListParams) ([]*Task, error) {
	all, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	q := listing.Query[*Task]{
		Search: params.Search,
		Fields: func(t *Task) []string { return []string{t.Title, t.Description} },
	}
	switch strings.ToLower(params.Status) {
	case FilterCompleted:
		q.Where = append(q.Where, func(t *Task) bool { return t.Completed })
	case FilterPending:
		q.Where = append(q.Where, func(t *Task) bool { return !t.Completed })
	}
	return listing.Apply(all, q, s.comparator(params.SortBy), params.Order), nil
}

// Stats counts completed, pending and overdue tasks at the current instant.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	all, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStats(all, s.now()), nil
}

func ComputeStats(tasks []*Task, ref time.Time) *Stats {
	st := &Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
		} else {
			st.Pending++
		}
		if t.IsOverdue(ref) {
			st.Overdue++
		}
	}
	return st
}
