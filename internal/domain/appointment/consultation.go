package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/listing"
)

var validConsultationStatuses = map[string]bool{
	StatusScheduled: true,
	StatusCompleted: true,
	StatusCancelled: true,
}

type ConsultationListParams struct {
	Search string
	Status string
	SortBy string
	Order  listing.Direction
}

var consultationSortKeys = map[string]func(a, b *ConsultationView) int{
	"date":       listing.By(func(v *ConsultationView) string { return v.When() }),
	"created_at": func(a, b *ConsultationView) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

func ValidConsultationSortKey(key string) bool {
	_, ok := consultationSortKeys[key]
	return key == "" || ok
}

func normalizeConsultation(c *Consultation) {
	c.Date = strings.TrimSpace(c.Date)
	c.Time = strings.TrimSpace(c.Time)
	c.Status = strings.ToLower(strings.TrimSpace(c.Status))
	if c.Status == "" {
		c.Status = StatusScheduled
	}
	if c.DurationMinutes == 0 {
		c.DurationMinutes = DefaultDurationMinutes
	}
	if c.Prescriptions == nil {
		c.Prescriptions = []Prescription{}
	}
}

func validateConsultation(c *Consultation) error {
	if err := validateSchedule(c.Date, c.Time); err != nil {
		return err
	}
	if c.DurationMinutes < 0 {
		return apperr.Invalid("duration_minutes", "must be positive")
	}
	if !validConsultationStatuses[c.Status] {
		return apperr.Invalid("status", "invalid value %q", c.Status)
	}
	for i, p := range c.Prescriptions {
		if strings.TrimSpace(p.MedicineName) == "" {
			return apperr.Invalid("prescriptions", "entry %d: medicine_name is required", i)
		}
	}
	return nil
}

func (s *Service) CreateConsultation(ctx context.Context, c *Consultation) error {
	c.ID = uuid.Nil
	normalizeConsultation(c)
	if err := s.checkParticipants(ctx, c.PatientID, c.DoctorID); err != nil {
		return err
	}
	if err := validateConsultation(c); err != nil {
		return err
	}
	if c.AppointmentID != nil {
		if _, err := s.appts.GetByID(ctx, *c.AppointmentID); err != nil {
			return apperr.Invalid("appointment_id", "unknown appointment %s", *c.AppointmentID)
		}
	}
	c.CreatedAt = s.now()
	return s.consults.Create(ctx, c)
}

func (s *Service) GetConsultation(ctx context.Context, id uuid.UUID) (*ConsultationView, error) {
	c, err := s.consults.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.resolve(ctx, []*Consultation{c})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *Service) UpdateConsultation(ctx context.Context, id uuid.UUID, u *ConsultationUpdate) (*Consultation, error) {
	c, err := s.consults.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.apply(c)
	normalizeConsultation(c)
	if err := validateConsultation(c); err != nil {
		return nil, err
	}
	if err := s.consults.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) DeleteConsultation(ctx context.Context, id uuid.UUID) error {
	return s.consults.Delete(ctx, id)
}

func (s *Service) AllConsultations(ctx context.Context) ([]*Consultation, error) {
	return s.consults.List(ctx)
}

// resolve attaches patient and doctor names. Missing references resolve to
// UnknownPatient and UnknownDoctor.
func (s *Service) resolve(ctx context.Context, items []*Consultation) ([]*ConsultationView, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	doctors, err := s.doctors.List(ctx)
	if err != nil {
		return nil, err
	}
	patientNames := make(map[uuid.UUID]string, len(patients))
	for _, p := range patients {
		patientNames[p.ID] = p.Name
	}
	doctorNames := make(map[uuid.UUID]string, len(doctors))
	for _, d := range doctors {
		doctorNames[d.ID] = d.Name
	}

	out := make([]*ConsultationView, len(items))
	for i, c := range items {
		v := &ConsultationView{Consultation: *c, PatientName: UnknownPatient, DoctorName: UnknownDoctor}
		if name, ok := patientNames[c.PatientID]; ok {
			v.PatientName = name
		}
		if name, ok := doctorNames[c.DoctorID]; ok {
			v.DoctorName = name
		}
		out[i] = v
	}
	return out, nil
}

// ListConsultations searches the resolved patient name, symptoms and
// diagnosis. Without a sort key the list is ordered by date and time, newest
// first.
func (s *Service) ListConsultations(ctx context.Context, params ConsultationListParams) ([]*ConsultationView, error) {
	all, err := s.consults.List(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.resolve(ctx, all)
	if err != nil {
		return nil, err
	}
	sortBy, order := params.SortBy, params.Order
	if sortBy == "" {
		sortBy = "date"
		if order == "" {
			order = listing.Desc
		}
	}
	q := listing.Query[*ConsultationView]{
		Search: params.Search,
		Fields: func(v *ConsultationView) []string {
			return []string{v.PatientName, v.Symptoms, v.Diagnosis}
		},
		Where: []func(*ConsultationView) bool{
			listing.Equal(strings.ToLower(params.Status), func(v *ConsultationView) string { return v.Status }),
		},
	}
	return listing.Apply(views, q, consultationSortKeys[sortBy], order), nil
}

// Board lists consultations with params and partitions them around the
// current day.
func (s *Service) Board(ctx context.Context, params ConsultationListParams) (*Board, error) {
	views, err := s.ListConsultations(ctx, params)
	if err != nil {
		return nil, err
	}
	return Partition(views, s.now()), nil
}

// Partition splits views into those dated on ref's calendar day, after it and
// before it. Dates are compared as YYYY-MM-DD strings.
func Partition(views []*ConsultationView, ref time.Time) *Board {
	today := ref.Format(dateLayout)
	b := &Board{
		Today:    []*ConsultationView{},
		Upcoming: []*ConsultationView{},
		Past:     []*ConsultationView{},
	}
	for _, v := range views {
		switch {
		case v.Date == today:
			b.Today = append(b.Today, v)
		case v.Date > today:
			b.Upcoming = append(b.Upcoming, v)
		default:
			b.Past = append(b.Past, v)
		}
		if v.Status == StatusCompleted {
			b.Completed++
		}
	}
	return b
}
