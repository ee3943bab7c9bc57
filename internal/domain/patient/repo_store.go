package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/store"
)

type patientRepoStore struct {
	coll *store.Collection[Patient]
}

// NewRepoStore returns a Repository that keeps the whole patient collection
// under store.KeyPatients.
func NewRepoStore(s store.Store) Repository {
	return &patientRepoStore{coll: store.NewCollection[Patient](s, store.KeyPatients)}
}

func (r *patientRepoStore) Create(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return r.coll.Mutate(ctx, func(items []Patient) ([]Patient, error) {
		return append(items, *p), nil
	})
}

func (r *patientRepoStore) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	items, err := r.coll.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, apperr.NotFound("patient")
}

func (r *patientRepoStore) Update(ctx context.Context, p *Patient) error {
	return r.coll.Mutate(ctx, func(items []Patient) ([]Patient, error) {
		for i := range items {
			if items[i].ID == p.ID {
				items[i] = *p
				return items, nil
			}
		}
		return nil, apperr.NotFound("patient")
	})
}

func (r *patientRepoStore) Delete(ctx context.Context, id uuid.UUID) error {
	return r.coll.Mutate(ctx, func(items []Patient) ([]Patient, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, apperr.NotFound("patient")
	})
}

func (r *patientRepoStore) List(ctx context.Context) ([]*Patient, error) {
	items, err := r.coll.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Patient, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}
