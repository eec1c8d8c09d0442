package field

import (
	"context"
	"errors"

	"github.com/marektacina/task-manager/internal/model"
)

var ErrNotFound = errors.New("field not found")

// Patch represents a partial update. nil pointer => "no change".
type Patch struct {
	Text     *string  `json:"text" validate:"omitempty,min=3"`
	Priority *float64 `json:"priority"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Text == nil && p.Priority == nil
}

type Repo interface {
	Create(ctx context.Context, f model.Field) (model.Field, error)
	// Find lists fields in store order, capped at limit when limit > 0.
	Find(ctx context.Context, limit int64) ([]model.Field, error)
	FindByID(ctx context.Context, id string) (model.Field, error)
	// FindRefs resolves ids to their id/text projection. Ids without a
	// matching field are skipped, not reported.
	FindRefs(ctx context.Context, ids []string) ([]model.FieldRef, error)
	UpdateByID(ctx context.Context, id string, p Patch) (model.Field, error)
	DeleteByID(ctx context.Context, id string) (model.Field, error)
}
