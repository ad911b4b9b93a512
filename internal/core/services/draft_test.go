package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchdesk/ordermatch/internal/adapters/driven/storage/memory"
	"github.com/matchdesk/ordermatch/internal/core/domain"
)

func TestDraftService_Load(t *testing.T) {
	svc := NewDraftService(nil)
	svc.Load(testItems())

	assert.Equal(t, 3, svc.Len())
	assert.Equal(t, testItems(), svc.Snapshot())
}

func TestDraftService_Load_AssignsUniqueRowIDs(t *testing.T) {
	svc := NewDraftService(nil)
	svc.Load(testItems())

	rows := svc.Rows()
	seen := make(map[string]bool)
	for _, r := range rows {
		require.NotEmpty(t, r.ID)
		assert.False(t, seen[r.ID], "row IDs must be unique")
		seen[r.ID] = true
	}
}

func TestDraftService_Load_ReplacesEverything(t *testing.T) {
	svc := NewDraftService(nil)
	svc.Load(testItems())
	svc.Load([]domain.LineItem{{RequestItem: "Screw", Quantity: 1, UnitPrice: 2, TotalAmount: 2}})

	assert.Equal(t, 1, svc.Len())
	assert.Equal(t, "Screw", svc.Snapshot()[0].RequestItem)
}

func TestDraftService_Update(t *testing.T) {
	svc := NewDraftService(nil)
	svc.Load(testItems())
	before := svc.Rows()

	updated := domain.LineItem{RequestItem: "Bolt M8", Quantity: 20, UnitPrice: 0.7, TotalAmount: 14}
	require.NoError(t, svc.Update(0, updated))

	after := svc.Rows()
	assert.Equal(t, updated, after[0].Item)
	// The row keeps its identity through an edit.
	assert.Equal(t, before[0].ID, after[0].ID)
}

func TestDraftService_Update_PreservesMatchState(t *testing.T) {
	svc := NewDraftService(nil)
	svc.Load(testItems())
	match := NewMatchService(svc, nil, 0)
	require.NoError(t, match.Seed(
		[]string{"Bolt M6", "Washer M6", "Nut M6"},
		domain.MatchResults{"Bolt M6": {{Match: "Bolt M6x20", Score: 0.9}}},
	))

	require.NoError(t, svc.Update(0, domain.LineItem{RequestItem: "Bolt M6 zinc", Quantity: 10, UnitPrice: 0.5, TotalAmount: 5}))

	rows := svc.Rows()
	assert.Equal(t, []string{"Bolt M6x20"}, rows[0].RankedMatches)
	assert.Equal(t, "Bolt M6x20", rows[0].SelectedMatch)
}

func TestDraftService_Update_OutOfRange(t *testing.T) {
	svc := NewDraftService(nil)
	svc.Load(testItems())

	err := svc.Update(3, domain.LineItem{})
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	err = svc.Update(-1, domain.LineItem{})
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestDraftService_Remove(t *testing.T) {
	svc := NewDraftService(nil)
	svc.Load(testItems())

	require.NoError(t, svc.Remove(1))

	items := svc.Snapshot()
	require.Len(t, items, 2)
	assert.Equal(t, "Bolt M6", items[0].RequestItem)
	assert.Equal(t, "Nut M6", items[1].RequestItem)
}

func TestDraftService_Remove_OutOfRange(t *testing.T) {
	svc := NewDraftService(nil)
	svc.Load(testItems())

	assert.ErrorIs(t, svc.Remove(3), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, svc.Remove(-1), domain.ErrIndexOutOfRange)
	assert.Equal(t, 3, svc.Len())
}

func TestDraftService_Remove_ReKeysMatchState(t *testing.T) {
	// Rows [A,B,C] with seeded matches: removing B moves C's match state
	// to index 1 and leaves A untouched.
	svc := NewDraftService(nil)
	svc.Load(testItems())
	match := NewMatchService(svc, nil, 0)
	require.NoError(t, match.Seed(
		[]string{"Bolt M6", "Washer M6", "Nut M6"},
		domain.MatchResults{
			"Bolt M6":   {{Match: "Bolt M6x20", Score: 0.9}},
			"Washer M6": {{Match: "Washer M6 A2", Score: 0.8}},
			"Nut M6":    {{Match: "Nut M6 A2", Score: 0.7}},
		},
	))

	require.NoError(t, svc.Remove(1))

	rows := svc.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Bolt M6x20", rows[0].SelectedMatch)
	assert.Equal(t, "Nut M6 A2", rows[1].SelectedMatch)
	assert.Equal(t, []string{"Nut M6 A2"}, rows[1].RankedMatches)
}

func TestDraftService_IndexCorrespondence(t *testing.T) {
	// Every row always carries its full match state: items and matches
	// cannot disagree on length whatever the mutation sequence.
	svc := NewDraftService(nil)
	match := NewMatchService(svc, nil, 0)

	svc.Load(testItems())
	require.NoError(t, match.Seed([]string{"Bolt M6", "Washer M6", "Nut M6"}, domain.MatchResults{}))
	require.NoError(t, svc.Remove(0))
	require.NoError(t, svc.Update(0, domain.LineItem{RequestItem: "X"}))
	require.NoError(t, svc.Remove(1))

	assert.Equal(t, svc.Len(), len(svc.Rows()))
	assert.Equal(t, svc.Len(), len(match.Selections()))
}

func TestDraftService_MirrorsMutationsToCache(t *testing.T) {
	cache := memory.NewDraftCache()
	svc := NewDraftService(cache)

	svc.Load(testItems())
	require.NoError(t, svc.Remove(2))

	// Mirror writes are fire-and-forget.
	require.Eventually(t, func() bool {
		items, err := cache.Read(context.Background())
		return err == nil && len(items) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestDraftService_MirrorOutOfOrderWriteCannotStick(t *testing.T) {
	// The first mirror write stalls inside the cache while a delete issues
	// a newer snapshot. The cache must converge on the newer one; a slow
	// write of the 3-row snapshot landing last would resurrect the deleted
	// row on the next Restore.
	cache := &gatedCache{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	svc := NewDraftService(cache)

	svc.Load(testItems())
	<-cache.entered

	require.NoError(t, svc.Remove(2))
	close(cache.release)

	require.Eventually(t, func() bool {
		items, err := cache.Read(context.Background())
		return err == nil && len(items) == 2
	}, time.Second, 5*time.Millisecond)
}

func TestDraftService_CacheFailureIsSilent(t *testing.T) {
	svc := NewDraftService(&failingCache{err: errors.New("disk full")})

	svc.Load(testItems())
	require.NoError(t, svc.Update(0, domain.LineItem{RequestItem: "still works"}))
	assert.Equal(t, "still works", svc.Snapshot()[0].RequestItem)
}

func TestDraftService_Restore(t *testing.T) {
	cache := memory.NewDraftCache()
	require.NoError(t, cache.Write(context.Background(), testItems()))

	svc := NewDraftService(cache)
	require.NoError(t, svc.Restore(context.Background()))
	assert.Equal(t, testItems(), svc.Snapshot())
}

func TestDraftService_Restore_EmptyCache(t *testing.T) {
	svc := NewDraftService(memory.NewDraftCache())
	require.NoError(t, svc.Restore(context.Background()))
	assert.Equal(t, 0, svc.Len())
}

func TestDraftService_Restore_Error(t *testing.T) {
	svc := NewDraftService(&failingCache{err: errors.New("corrupt")})
	assert.Error(t, svc.Restore(context.Background()))
}

func TestDraftService_SnapshotIsACopy(t *testing.T) {
	svc := NewDraftService(nil)
	svc.Load(testItems())

	snap := svc.Snapshot()
	snap[0].RequestItem = "mutated"

	assert.Equal(t, "Bolt M6", svc.Snapshot()[0].RequestItem)
}
