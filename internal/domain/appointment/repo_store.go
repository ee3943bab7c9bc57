package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/store"
)

// -- Appointment --

type appointmentRepoStore struct {
	coll *store.Collection[Appointment]
}

func NewAppointmentRepoStore(s store.Store) AppointmentRepository {
	return &appointmentRepoStore{coll: store.NewCollection[Appointment](s, store.KeyAppointments)}
}

func (r *appointmentRepoStore) Create(ctx context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return r.coll.Mutate(ctx, func(items []Appointment) ([]Appointment, error) {
		return append(items, *a), nil
	})
}

func (r *appointmentRepoStore) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	items, err := r.coll.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, apperr.NotFound("appointment")
}

func (r *appointmentRepoStore) Update(ctx context.Context, a *Appointment) error {
	return r.coll.Mutate(ctx, func(items []Appointment) ([]Appointment, error) {
		for i := range items {
			if items[i].ID == a.ID {
				items[i] = *a
				return items, nil
			}
		}
		return nil, apperr.NotFound("appointment")
	})
}

func (r *appointmentRepoStore) Delete(ctx context.Context, id uuid.UUID) error {
	return r.coll.Mutate(ctx, func(items []Appointment) ([]Appointment, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, apperr.NotFound("appointment")
	})
}

func (r *appointmentRepoStore) List(ctx context.Context) ([]*Appointment, error) {
	items, err := r.coll.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Appointment, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}

// -- Consultation --

type consultationRepoStore struct {
	coll *store.Collection[Consultation]
}

func NewConsultationRepoStore(s store.Store) ConsultationRepository {
	return &consultationRepoStore{coll: store.NewCollection[Consultation](s, store.KeyConsultations)}
}

func (r *consultationRepoStore) Create(ctx context.Context, c *Consultation) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return r.coll.Mutate(ctx, func(items []Consultation) ([]Consultation, error) {
		return append(items, *c), nil
	})
}

func (r *consultationRepoStore) GetByID(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	items, err := r.coll.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, apperr.NotFound("consultation")
}

func (r *consultationRepoStore) Update(ctx context.Context, c *Consultation) error {
	return r.coll.Mutate(ctx, func(items []Consultation) ([]Consultation, error) {
		for i := range items {
			if items[i].ID == c.ID {
				items[i] = *c
				return items, nil
			}
		}
		return nil, apperr.NotFound("consultation")
	})
}

func (r *consultationRepoStore) Delete(ctx context.Context, id uuid.UUID) error {
	return r.coll.Mutate(ctx, func(items []Consultation) ([]Consultation, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, apperr.NotFound("consultation")
	})
}

func (r *consultationRepoStore) List(ctx context.Context) ([]*Consultation, error) {
	items, err := r.coll.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Consultation, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}
