package field

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/marektacina/task-manager/internal/model"
)

// MemoryRepo is an in-memory Repo used by tests and local development.
// It preserves insertion order for Find.
type MemoryRepo struct {
	mu     sync.RWMutex
	fields map[string]model.Field
	order  []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{fields: map[string]model.Field{}}
}

func (r *MemoryRepo) Create(_ context.Context, f model.Field) (model.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f.ID = uuid.NewString()
	r.fields[f.ID] = f
	r.order = append(r.order, f.ID)
	return f, nil
}

func (r *MemoryRepo) Find(_ context.Context, limit int64) ([]model.Field, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Field{}
	for _, id := range r.order {
		out = append(out, r.fields[id])
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryRepo) FindByID(_ context.Context, id string) (model.Field, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.fields[id]
	if !ok {
		return model.Field{}, ErrNotFound
	}
	return f, nil
}

func (r *MemoryRepo) FindRefs(_ context.Context, ids []string) ([]model.FieldRef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.FieldRef{}
	for _, id := range r.order {
		if !slices.Contains(ids, id) {
			continue
		}
		f := r.fields[id]
		out = append(out, model.FieldRef{ID: f.ID, Text: f.Text})
	}
	return out, nil
}

func (r *MemoryRepo) UpdateByID(_ context.Context, id string, p Patch) (model.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.fields[id]
	if !ok {
		return model.Field{}, ErrNotFound
	}
	if p.Text != nil {
		f.Text = *p.Text
	}
	if p.Priority != nil {
		f.Priority = *p.Priority
	}
	r.fields[id] = f
	return f, nil
}

func (r *MemoryRepo) DeleteByID(_ context.Context, id string) (model.Field, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.fields[id]
	if !ok {
		return model.Field{}, ErrNotFound
	}
	delete(r.fields, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return f, nil
}
