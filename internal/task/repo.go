package task

import (
	"context"
	"errors"

	"github.com/marektacina/task-manager/internal/model"
)

var ErrNotFound = errors.New("task not found")

// Patch represents a partial update. nil pointer => "no change".
type Patch struct {
	Text     *string   `json:"text" validate:"omitempty,min=3"`
	FieldIDs *[]string `json:"fieldIDs"`
	IsDone   *bool     `json:"isDone"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Text == nil && p.FieldIDs == nil && p.IsDone == nil
}

// ListFilter narrows Find results. Filters compose conjunctively; a zero
// Limit means unbounded.
type ListFilter struct {
	Text    *string
	FieldID *string
	IsDone  *bool
	Limit   int64
}

type Repo interface {
	// Create persists t, assigns its id and defaults a zero deadline to the
	// creation time.
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Find(ctx context.Context, f ListFilter) ([]model.Task, error)
	FindByID(ctx context.Context, id string) (model.Task, error)
	UpdateByID(ctx context.Context, id string, p Patch) (model.Task, error)
	DeleteByID(ctx context.Context, id string) (model.Task, error)
	// CountByField counts tasks whose fieldIDs contain fieldID.
	CountByField(ctx context.Context, fieldID string) (int64, error)
}
