package appointment

import (
	"context"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Appointment, error)
}

type ConsultationRepository interface {
	Create(ctx context.Context, c *Consultation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Consultation, error)
	Update(ctx context.Context, c *Consultation) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Consultation, error)
}
