package task

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/marektacina/task-manager/internal/model"
)

// MemoryRepo is an in-memory Repo used by tests and local development.
// It preserves insertion order for Find.
type MemoryRepo struct {
	mu    sync.RWMutex
	tasks map[string]model.Task
	order []string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{tasks: map[string]model.Task{}}
}

func normalizeTask(t *model.Task) {
	if t.FieldIDs == nil {
		t.FieldIDs = []string{}
	}
	if t.Deadline.IsZero() {
		t.Deadline = time.Now().UTC().Truncate(time.Millisecond)
	}
}

func applyPatch(t *model.Task, p Patch) {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.FieldIDs != nil {
		t.FieldIDs = slices.Clone(*p.FieldIDs)
	}
	if p.IsDone != nil {
		t.IsDone = *p.IsDone
	}
	normalizeTask(t)
}

func (r *MemoryRepo) Create(_ context.Context, t model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = uuid.NewString()
	t.FieldIDs = slices.Clone(t.FieldIDs)
	normalizeTask(&t)
	r.tasks[t.ID] = t
	r.order = append(r.order, t.ID)
	return t, nil
}

func (r *MemoryRepo) Find(_ context.Context, f ListFilter) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.Task{}
	for _, id := range r.order {
		t := r.tasks[id]
		if f.Text != nil && t.Text != *f.Text {
			continue
		}
		if f.FieldID != nil && !slices.Contains(t.FieldIDs, *f.FieldID) {
			continue
		}
		if f.IsDone != nil && t.IsDone != *f.IsDone {
			continue
		}
		out = append(out, t)
		if f.Limit > 0 && int64(len(out)) == f.Limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryRepo) FindByID(_ context.Context, id string) (model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	return t, nil
}

func (r *MemoryRepo) UpdateByID(_ context.Context, id string, p Patch) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	applyPatch(&t, p)
	r.tasks[id] = t
	return t, nil
}

func (r *MemoryRepo) DeleteByID(_ context.Context, id string) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	delete(r.tasks, id)
	r.order = slices.DeleteFunc(r.order, func(s string) bool { return s == id })
	return t, nil
}

func (r *MemoryRepo) CountByField(_ context.Context, fieldID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, t := range r.tasks {
		if slices.Contains(t.FieldIDs, fieldID) {
			n++
		}
	}
	return n, nil
}
