package task

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/apperr"
	"github.com/clinicdesk/clinicdesk/internal/platform/store"
)

type taskRepoStore struct {
	coll *store.Collection[Task]
}

func NewTaskRepoStore(s store.Store) TaskRepository {
	return &taskRepoStore{coll: store.NewCollection[Task](s, store.KeyTasks)}
}

func (r *taskRepoStore) Create(ctx context.Context, t *Task) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return r.coll.Mutate(ctx, func(items []Task) ([]Task, error) {
		return append(items, *t), nil
	})
}

func (r *taskRepoStore) GetByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	items, err := r.coll.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, apperr.NotFound("task")
}

func (r *taskRepoStore) Update(ctx context.Context, t *Task) error {
	return r.coll.Mutate(ctx, func(items []Task) ([]Task, error) {
		for i := range items {
			if items[i].ID == t.ID {
				items[i] = *t
				return items, nil
			}
		}
		return nil, apperr.NotFound("task")
	})
}

func (r *taskRepoStore) Delete(ctx context.Context, id uuid.UUID) error {
	return r.coll.Mutate(ctx, func(items []Task) ([]Task, error) {
		for i := range items {
			if items[i].ID == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, apperr.NotFound("task")
	})
}

func (r *taskRepoStore) List(ctx context.Context) ([]*Task, error) {
	items, err := r.coll.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Task, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}
