package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/listing"
)

var validAppointmentStatuses = map[string]bool{
	StatusScheduled:   true,
	StatusCompleted:   true,
	StatusCancelled:   true,
	StatusRescheduled: true,
}

type AppointmentListParams struct {
	Search    string
	Status    string
	PatientID string
	DoctorID  string
	Date      string
	SortBy    string
	Order     listing.Direction
}

var appointmentSortKeys = map[string]func(a, b *Appointment) int{
	"date":       listing.By((*Appointment).When),
	"created_at": func(a, b *Appointment) int { return a.CreatedAt.Compare(b.CreatedAt) },
}

func ValidAppointmentSortKey(key string) bool {
	_, ok := appointmentSortKeys[key]
	return key == "" || ok
}

// Service manages appointments and consultations. Patients and doctors are
// read to check references and resolve display names; they are never written.
type Service struct {
	appts    AppointmentRepository
	consults ConsultationRepository
	patients patient.Repository
	doctors  doctor.Repository
	now      func() time.Time
}

func NewService(appts AppointmentRepository, consults ConsultationRepository, patients patient.Repository, doctors doctor.Repository) *Service {
	return &Service{
		appts:    appts,
		consults: consults,
		patients: patients,
		doctors:  doctors,
		now:      time.Now,
	}
}

// SetClock replaces the time source used for timestamps and for the
// reference day of the consultation board.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) checkParticipants(ctx context.Context, patientID, doctorID uuid.UUID) error {
	if patientID == uuid.Nil {
		return apperr.Invalid("patient_id", "is required")
	}
	if doctorID == uuid.Nil {
		return apperr.Invalid("doctor_id", "is required")
	}
	if _, err := s.patients.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Invalid("patient_id", "unknown patient %s", patientID)
		}
		return err
	}
	if _, err := s.doctors.GetByID(ctx, doctorID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Invalid("doctor_id", "unknown doctor %s", doctorID)
		}
		return err
	}
	return nil
}

func validateSchedule(date, clock string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return apperr.Invalid("date", "must be YYYY-MM-DD")
	}
	if _, err := time.Parse(timeLayout, clock); err != nil {
		return apperr.Invalid("time", "must be HH:MM")
	}
	return nil
}

func normalizeAppointment(a *Appointment) {
	a.Date = strings.TrimSpace(a.Date)
	a.Time = strings.TrimSpace(a.Time)
	a.Reason = strings.TrimSpace(a.Reason)
	a.Status = strings.ToLower(strings.TrimSpace(a.Status))
	if a.Status == "" {
		a.Status = StatusScheduled
	}
}

func validateAppointment(a *Appointment) error {
	if err := validateSchedule(a.Date, a.Time); err != nil {
		return err
	}
	if !validAppointmentStatuses[a.Status] {
		return apperr.Invalid("status", "invalid value %q", a.Status)
	}
	return nil
}

func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	a.ID = uuid.Nil
	normalizeAppointment(a)
	if err := s.checkParticipants(ctx, a.PatientID, a.DoctorID); err != nil {
		return err
	}
	if err := validateAppointment(a); err != nil {
		return err
	}
	now := s.now()
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.appts.Create(ctx, a)
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appts.GetByID(ctx, id)
}

func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, u *AppointmentUpdate) (*Appointment, error) {
	a, err := s.appts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.apply(a)
	normalizeAppointment(a)
	if u.PatientID != nil || u.DoctorID != nil {
		if err := s.checkParticipants(ctx, a.PatientID, a.DoctorID); err != nil {
			return nil, err
		}
	}
	if err := validateAppointment(a); err != nil {
		return nil, err
	}
	a.UpdatedAt = s.now()
	if err := s.appts.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// UpdateStatus moves an appointment to another status. Any transition between
// the known statuses is allowed.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*Appointment, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if !validAppointmentStatuses[status] {
		return nil, apperr.Invalid("status", "invalid value %q", status)
	}
	return s.UpdateAppointment(ctx, id, &AppointmentUpdate{Status: &status})
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.appts.Delete(ctx, id)
}

func (s *Service) AllAppointments(ctx context.Context) ([]*Appointment, error) {
	return s.appts.List(ctx)
}

// ListAppointments searches the reason text and filters by status,
// participant and day. Sorting by "date" orders on date then time.
func (s *Service) ListAppointments(ctx context.Context, params AppointmentListParams) ([]*Appointment, error) {
	all, err := s.appts.List(ctx)
	if err != nil {
		return nil, err
	}
	q := listing.Query[*Appointment]{
		Search: params.Search,
		Fields: func(a *Appointment) []string { return []string{a.Reason} },
		Where: []func(*Appointment) bool{
			listing.Equal(strings.ToLower(params.Status), func(a *Appointment) string { return a.Status }),
			listing.Equal(params.PatientID, func(a *Appointment) string { return a.PatientID.String() }),
			listing.Equal(params.DoctorID, func(a *Appointment) string { return a.DoctorID.String() }),
			listing.Equal(params.Date, func(a *Appointment) string { return a.Date }),
		},
	}
	return listing.Apply(all, q, appointmentSortKeys[params.SortBy], params.Order), nil
}
