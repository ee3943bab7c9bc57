package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/listing"
)

const (
	DefaultLanguage = "English"
	// minSimilarQuery is the shortest name fragment that triggers the
	// near-duplicate lookup.
	minSimilarQuery = 3
)

var errDuplicatePatient = fmt.Errorf("a patient with this name and phone number %w", apperr.ErrDuplicate)

var validGenders = map[string]bool{
	"male":   true,
	"female": true,
	"other":  true,
}

// ListParams selects and orders patients for a list view.
type ListParams struct {
	Search string
	Gender string
	SortBy string
	Order  listing.Direction
}

var sortKeys = map[string]func(a, b *Patient) int{
	"name":       listing.By(func(p *Patient) string { return strings.ToLower(p.Name) }),
	"created_at": func(a, b *Patient) int { return a.CreatedAt.Compare(b.CreatedAt) },
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

// SetClock replaces the time source used for timestamps.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func validate(p *Patient) error {
	if p.Name == "" {
		return apperr.Invalid("name", "is required")
	}
	if p.Phone == "" {
		return apperr.Invalid("phone", "is required")
	}
	if p.Gender == "" {
		return apperr.Invalid("gender", "is required")
	}
	if !validGenders[p.Gender] {
		return apperr.Invalid("gender", "invalid value %q", p.Gender)
	}
	if p.DateOfBirth == "" {
		return apperr.Invalid("date_of_birth", "is required")
	}
	if _, err := time.Parse("2006-01-02", p.DateOfBirth); err != nil {
		return apperr.Invalid("date_of_birth", "must be YYYY-MM-DD")
	}
	return nil
}

func normalize(p *Patient) {
	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Gender = strings.ToLower(strings.TrimSpace(p.Gender))
	p.DateOfBirth = strings.TrimSpace(p.DateOfBirth)
	if strings.TrimSpace(p.PreferredLanguage) == "" {
		p.PreferredLanguage = DefaultLanguage
	}
}

// isDuplicate reports whether another patient has the same name (ignoring
// case) and the same phone number.
func isDuplicate(existing []*Patient, p *Patient) bool {
	for _, e := range existing {
		if e.ID != p.ID && strings.EqualFold(e.Name, p.Name) && e.Phone == p.Phone {
			return true
		}
	}
	return false
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	p.ID = uuid.Nil
	normalize(p)
	if err := validate(p); err != nil {
		return err
	}
	existing, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	if isDuplicate(existing, p) {
		return errDuplicatePatient
	}
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.repo.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, u *Update) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.apply(p)
	normalize(p)
	if err := validate(p); err != nil {
		return nil, err
	}
	existing, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if isDuplicate(existing, p) {
		return nil, errDuplicatePatient
	}
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) AllPatients(ctx context.Context) ([]*Patient, error) {
	return s.repo.List(ctx)
}

// ListPatients searches name, phone and city, filters by gender and sorts by
// the requested key (insertion order when none is given).
func (s *Service) ListPatients(ctx context.Context, params ListParams) ([]*Patient, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	q := listing.Query[*Patient]{
		Search: params.Search,
		Fields: func(p *Patient) []string { return []string{p.Name, p.Phone, p.City} },
		Where: []func(*Patient) bool{
			listing.Equal(strings.ToLower(params.Gender), func(p *Patient) string { return p.Gender }),
		},
	}
	return listing.Apply(all, q, sortKeys[params.SortBy], params.Order), nil
}

// SimilarPatients returns patients whose name contains the fragment. Fragments
// shorter than three characters return nothing.
func (s *Service) SimilarPatients(ctx context.Context, name string) ([]*Patient, error) {
	name = strings.TrimSpace(name)
	if len([]rune(name)) < minSimilarQuery {
		return []*Patient{}, nil
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return listing.Filter(all, listing.Query[*Patient]{
		Search: name,
		Fields: func(p *Patient) []string { return []string{p.Name} },
	}), nil
}
