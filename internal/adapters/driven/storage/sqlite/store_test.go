package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchdesk/ordermatch/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_FirstRunReadsEmpty(t *testing.T) {
	store := newTestStore(t)

	items, err := store.Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	items := []domain.LineItem{
		{RequestItem: `Titanium Washer M4 "30mm"`, Quantity: 25, UnitPrice: 90.866, TotalAmount: 2271.65},
		{RequestItem: "Bolt M6", Quantity: 10, UnitPrice: 0.5, TotalAmount: 5},
	}
	require.NoError(t, store.Write(ctx, items))

	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestStore_RoundTrip_Empty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, []domain.LineItem{}))

	got, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_WriteReplaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, []domain.LineItem{{RequestItem: "first"}}))
	require.NoError(t, store.Write(ctx, []domain.LineItem{{RequestItem: "second"}}))

	got, err := store.Read(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "second", got[0].RequestItem)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Write(ctx, []domain.LineItem{{RequestItem: "persisted", Quantity: 1}}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Read(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "persisted", got[0].RequestItem)
}
