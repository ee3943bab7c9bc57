package doctor

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/store"
)

type doctorRepoStore struct {
	coll *store.Collection[Doctor]
}

func NewRepoStore(s store.Store) Repository {
	return &doctorRepoStore{coll: store.NewCollection[Doctor](s, store.KeyDoctors)}
}

func (r *doctorRepoStore) Create(ctx context.Context, d *Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return r.coll.Mutate(ctx, func(items []Doctor) ([]Doctor, error) {
		return append(items, *d), nil
	})
}

func (r *doctorRepoStore) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	items, err := r.coll.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, apperr.NotFound("doctor")
}

func (r *doctorRepoStore) Update(ctx context.Context, d *Doctor) error {
	return r.coll.Mutate(ctx, func(items []Doctor) ([]Doctor, error) {
		for i := range items {
			if items[i].ID == d.ID {
				items[i] = *d
				return items, nil
			}
		}
		return nil, apperr.NotFound("doctor")
	})
}

func (r *doctorRepoStore) Delete(ctx context.Context, id uuid.UUID) error {
	return r.coll.Mutate(ctx, func(items []Doctor) ([]Doctor, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, apperr.NotFound("doctor")
	})
}

func (r *doctorRepoStore) List(ctx context.Context) ([]*Doctor, error) {
	items, err := r.coll.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Doctor, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}
