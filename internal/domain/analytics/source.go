package analytics

import (
	"context"

	"github.com/clinicdesk/clinicdesk/internal/domain/appointment"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
)

// Source supplies the read-side collections. Implementations must not write.
type Source interface {
	Patients(ctx context.Context) ([]Patient, error)
	Appointments(ctx context.Context) ([]Appointment, error)
	Consultations(ctx context.Context) ([]Consultation, error)
}

type repoSource struct {
	patients patient.Repository
	appts    appointment.AppointmentRepository
	consults appointment.ConsultationRepository
}

// NewRepoSource reads from the domain repositories.
func NewRepoSource(patients patient.Repository, appts appointment.AppointmentRepository, consults appointment.ConsultationRepository) Source {
	return &repoSource{patients: patients, appts: appts, consults: consults}
}

func (r *repoSource) Patients(ctx context.Context) ([]Patient, error) {
	all, err := r.patients.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Patient, len(all))
	for i, p := range all {
		out[i] = Patient{ID: p.ID.String(), CreatedAt: p.CreatedAt}
	}
	return out, nil
}

func (r *repoSource) Appointments(ctx context.Context) ([]Appointment, error) {
	all, err := r.appts.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Appointment, len(all))
	for i, a := range all {
		out[i] = Appointment{ID: a.ID.String(), Date: a.Date, Status: a.Status}
	}
	return out, nil
}

func (r *repoSource) Consultations(ctx context.Context) ([]Consultation, error) {
	all, err := r.consults.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Consultation, len(all))
	for i, c := range all {
		out[i] = Consultation{ID: c.ID.String()}
	}
	return out, nil
}
