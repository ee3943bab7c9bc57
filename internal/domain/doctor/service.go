package doctor

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/listing"
)

var validStatuses = map[string]bool{
	StatusActive:   true,
	StatusInactive: true,
	StatusOnLeave:  true,
}

var validWeekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

type ListParams struct {
	Search         string
	Specialization string
	Status         string
	SortBy         string
	Order          listing.Direction
}

var sortKeys = map[string]func(a, b *Doctor) int{
	"name":       listing.By(func(d *Doctor) string { return strings.ToLower(d.Name) }),
	"experience": listing.By(func(d *Doctor) int { return d.Experience }),
	"created_at": func(a, b *Doctor) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

func ValidSortKey(key string) bool {
	_, ok := sortKeys[key]
	return key == "" || ok
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func normalize(d *Doctor) {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
	d.Specialization = strings.TrimSpace(d.Specialization)
	d.Department = strings.TrimSpace(d.Department)
	d.Status = strings.ToLower(strings.TrimSpace(d.Status))
	if d.Status == "" {
		d.Status = StatusActive
	}
	if d.Qualifications == nil {
		d.Qualifications = []string{}
	}
	if d.Availability == nil {
		d.Availability = Availability{}
	}
}

func validate(d *Doctor) error {
	if d.Name == "" {
		return apperr.Invalid("name", "is required")
	}
	if d.Email == "" {
		return apperr.Invalid("email", "is required")
	}
	if !strings.Contains(d.Email, "@") {
		return apperr.Invalid("email", "invalid address %q", d.Email)
	}
	if d.Specialization == "" {
		return apperr.Invalid("specialization", "is required")
	}
	if d.Experience < 0 {
		return apperr.Invalid("experience", "must not be negative")
	}
	if !validStatuses[d.Status] {
		return apperr.Invalid("status", "invalid value %q", d.Status)
	}
	for day, slot := range d.Availability {
		if !validWeekdays[day] {
			return apperr.Invalid("availability", "unknown weekday %q", day)
		}
		if err := validateSlot(day, slot); err != nil {
			return err
		}
	}
	return nil
}

func validateSlot(day string, slot Slot) error {
	if !slot.Available && slot.Start == "" && slot.End == "" {
		return nil
	}
	start, err := time.Parse("15:04", slot.Start)
	if err != nil {
		return apperr.Invalid("availability", "%s start must be HH:MM", day)
	}
	end, err := time.Parse("15:04", slot.End)
	if err != nil {
		return apperr.Invalid("availability", "%s end must be HH:MM", day)
	}
	if slot.Available && !start.Before(end) {
		return apperr.Invalid("availability", "%s start must be before end", day)
	}
	return nil
}

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	d.ID = uuid.Nil
	normalize(d)
	if err := validate(d); err != nil {
		return err
	}
	now := s.now()
	d.CreatedAt = now
	d.UpdatedAt = now
	return s.repo.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateDoctor(ctx context.Context, id uuid.UUID, u *Update) (*Doctor, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.apply(d)
	normalize(d)
	if err := validate(d); err != nil {
		return nil, err
	}
	d.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) AllDoctors(ctx context.Context) ([]*Doctor, error) {
	return s.repo.List(ctx)
}

// ListDoctors searches name, specialization, department and email. The
// specialization filter is an exact match.
func (s *Service) ListDoctors(ctx context.Context, params ListParams) ([]*Doctor, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	q := listing.Query[*Doctor]{
		Search: params.Search,
		Fields: func(d *Doctor) []string {
			return []string{d.Name, d.Specialization, d.Department, d.Email}
		},
		Where: []func(*Doctor) bool{
			listing.Equal(params.Specialization, func(d *Doctor) string { return d.Specialization }),
			listing.Equal(strings.ToLower(params.Status), func(d *Doctor) string { return d.Status }),
		},
	}
	return listing.Apply(all, q, sortKeys[params.SortBy], params.Order), nil
}

// Specializations returns the distinct specializations in ascending order.
func (s *Service) Specializations(ctx context.Context) ([]string, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(all))
	out := []string{}
	for _, d := range all {
		if d.Specialization != "" && !seen[d.Specialization] {
			seen[d.Specialization] = true
			out = append(out, d.Specialization)
		}
	}
	slices.Sort(out)
	return out, nil
}

func CountActive(doctors []*Doctor) int {
	n := 0
	for _, d := range doctors {
		if d.Status == StatusActive {
			n++
		}
	}
	return n
}
