package field

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marektacina/task-manager/internal/model"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestMemoryRepoCreateAndRoundTrip(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Field{Text: "Work", Priority: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestMemoryRepoFindLimit(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	first, err := repo.Create(ctx, model.Field{Text: "Work", Priority: 1})
	require.NoError(t, err)
	_, err = repo.Create(ctx, model.Field{Text: "Home", Priority: 2})
	require.NoError(t, err)

	all, err := repo.Find(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)

	capped, err := repo.Find(ctx, 1)
	require.NoError(t, err)
	require.Len(t, capped, 1)
	assert.Equal(t, first.ID, capped[0].ID)
}

func TestMemoryRepoFindRefs(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	work, err := repo.Create(ctx, model.Field{Text: "Work", Priority: 1})
	require.NoError(t, err)
	home, err := repo.Create(ctx, model.Field{Text: "Home", Priority: 2})
	require.NoError(t, err)

	refs, err := repo.FindRefs(ctx, []string{home.ID, work.ID, "unknown-id"})
	require.NoError(t, err)
	assert.Equal(t, []model.FieldRef{
		{ID: work.ID, Text: "Work"},
		{ID: home.ID, Text: "Home"},
	}, refs)

	refs, err = repo.FindRefs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestMemoryRepoUpdatePartial(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Field{Text: "Work", Priority: 1})
	require.NoError(t, err)

	updated, err := repo.UpdateByID(ctx, created.ID, Patch{Priority: floatPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, "Work", updated.Text)
	assert.Equal(t, 3.0, updated.Priority)

	updated, err = repo.UpdateByID(ctx, created.ID, Patch{Text: strPtr("Office")})
	require.NoError(t, err)
	assert.Equal(t, "Office", updated.Text)
	assert.Equal(t, 3.0, updated.Priority)

	_, err = repo.UpdateByID(ctx, "missing", Patch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepoDelete(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Field{Text: "Work", Priority: 1})
	require.NoError(t, err)

	deleted, err := repo.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, deleted)

	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
