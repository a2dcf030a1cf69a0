package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexoventlabs/business-tracker/internal/business"
	"github.com/nexoventlabs/business-tracker/pkg/apperr"
)

func TestMemoryRepoCRUD(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()

	oid, err := r.Create(ctx, business.Record{"name": "Acme", "id": int64(1), "_id": "client-supplied"})
	require.NoError(t, err)
	require.Len(t, oid, 24)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "Acme", list[0]["name"])
	require.NotContains(t, list[0], business.FieldInternalID)

	require.NoError(t, r.Update(ctx, 1, business.Record{"name": "Acme Corp"}))
	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", list[0]["name"])
	require.Equal(t, int64(1), list[0]["id"])

	require.NoError(t, r.Delete(ctx, 1))
	err = r.Delete(ctx, 1)
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestMemoryRepo_UpdateMissing(t *testing.T) {
	r := NewMemoryRepo()
	err := r.Update(context.Background(), 99, business.Record{"name": "x"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryRepo_DuplicateIDsAffectFirstMatch(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	_, err := r.Create(ctx, business.Record{"id": int64(5), "name": "first"})
	require.NoError(t, err)
	_, err = r.Create(ctx, business.Record{"id": int64(5), "name": "second"})
	require.NoError(t, err)

	require.NoError(t, r.Update(ctx, 5, business.Record{"name": "updated"}))
	list, _ := r.List(ctx)
	require.Equal(t, "updated", list[0]["name"])
	require.Equal(t, "second", list[1]["name"])

	require.NoError(t, r.Delete(ctx, 5))
	list, _ = r.List(ctx)
	require.Len(t, list, 1)
	require.Equal(t, "second", list[0]["name"])
}

func TestMemoryRepo_NumericMatchAcrossTypes(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepo()
	_, err := r.Create(ctx, business.Record{"id": 7.0})
	require.NoError(t, err)
	_, err = r.Create(ctx, business.Record{"id": "8"})
	require.NoError(t, err)

	require.NoError(t, r.Update(ctx, 7, business.Record{"seen": true}))
	require.ErrorIs(t, r.Delete(ctx, 8), ErrNotFound)
}

func TestMemoryRepoUnique_RejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryRepoUnique()
	_, err := r.Create(ctx, business.Record{"id": int64(1)})
	require.NoError(t, err)
	_, err = r.Create(ctx, business.Record{"id": int64(2)})
	require.NoError(t, err)

	_, err = r.Create(ctx, business.Record{"id": int64(1)})
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	err = r.Update(ctx, 2, business.Record{"id": int64(1)})
	require.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	// rewriting a record's own id is not a conflict
	require.NoError(t, r.Update(ctx, 2, business.Record{"id": int64(2), "name": "two"}))

	// records without an id are not constrained
	_, err = r.Create(ctx, business.Record{"name": "no id"})
	require.NoError(t, err)
	_, err = r.Create(ctx, business.Record{"name": "no id either"})
	require.NoError(t, err)
}
