// Package services implements the driving ports: the order draft, its
// match state, the three-phase workflow and the export serializer.
package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/matchdesk/ordermatch/internal/core/domain"
	"github.com/matchdesk/ordermatch/internal/core/ports/driven"
	"github.com/matchdesk/ordermatch/internal/core/ports/driving"
	"github.com/matchdesk/ordermatch/internal/logger"
)

// Ensure DraftService implements the interface.
var _ driving.DraftService = (*DraftService)(nil)

// DraftService holds the canonical ordered rows of the current draft.
// Items and match state live in one ReconciledRow per position, so every
// mutation is a single-slice operation and index correspondence between
// items and matches can never drift.
type DraftService struct {
	mu    sync.RWMutex
	rows  []domain.ReconciledRow
	cache driven.DraftCache

	// mirrorMu serializes cache writes and mirrorSeq orders them, so a
	// slow write of an older snapshot can never land over a newer one.
	mirrorMu  sync.Mutex
	mirrorSeq uint64
}

// NewDraftService creates an empty draft. cache may be nil, in which case
// mutations are not mirrored locally.
func NewDraftService(cache driven.DraftCache) *DraftService {
	return &DraftService{cache: cache}
}

// Restore populates the draft from the local cache. A missing or empty
// cache leaves the draft empty; match state is never restored (it is
// reconstructed from the matcher when re-entering the Match phase).
func (s *DraftService) Restore(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	items, err := s.cache.Read(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.rows = newRows(items)
	s.mu.Unlock()
	return nil
}

// Load replaces the whole draft with items, assigning fresh row IDs and
// clearing any previous match state.
func (s *DraftService) Load(items []domain.LineItem) {
	s.mu.Lock()
	s.rows = newRows(items)
	s.mu.Unlock()
	s.mirror()
}

// Update replaces the item at index in full. The row keeps its ID and its
// match state: matches travel with the row through edits.
func (s *DraftService) Update(index int, item domain.LineItem) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.rows) {
		s.mu.Unlock()
		return domain.ErrIndexOutOfRange
	}
	s.rows[index].Item = item
	s.mu.Unlock()
	s.mirror()
	return nil
}

// Remove deletes the row at index. Because item and match state share the
// row, the splice re-keys everything at once.
func (s *DraftService) Remove(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.rows) {
		s.mu.Unlock()
		return domain.ErrIndexOutOfRange
	}
	s.rows = append(s.rows[:index], s.rows[index+1:]...)
	s.mu.Unlock()
	s.mirror()
	return nil
}

// Snapshot returns a copy of the current items in order.
func (s *DraftService) Snapshot() []domain.LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Rows returns a copy of the current rows with their match state.
func (s *DraftService) Rows() []domain.ReconciledRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := make([]domain.ReconciledRow, len(s.rows))
	for i, r := range s.rows {
		rows[i] = r
		rows[i].RankedMatches = append([]string(nil), r.RankedMatches...)
		rows[i].AdHocResults = append([]string(nil), r.AdHocResults...)
	}
	return rows
}

// Len returns the number of rows.
func (s *DraftService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}

// snapshotLocked copies the items. Callers hold at least a read lock.
func (s *DraftService) snapshotLocked() []domain.LineItem {
	items := make([]domain.LineItem, len(s.rows))
	for i, r := range s.rows {
		items[i] = r.Item
	}
	return items
}

// mirror writes the current snapshot to the local cache, fire-and-forget.
// Writes hold mirrorMu and re-check the sequence number under it: a
// snapshot superseded while queued is skipped instead of written, so the
// cache always converges on the newest snapshot. Cache failures are logged
// at verbose level and never surfaced: the local cache is best-effort and
// does not gate any mutation.
func (s *DraftService) mirror() {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	items := s.snapshotLocked()
	s.mirrorSeq++
	issued := s.mirrorSeq
	s.mu.Unlock()
	go func() {
		s.mirrorMu.Lock()
		defer s.mirrorMu.Unlock()
		s.mu.RLock()
		superseded := issued != s.mirrorSeq
		s.mu.RUnlock()
		if superseded {
			logger.Debug("skipping superseded draft cache write")
			return
		}
		if err := s.cache.Write(context.Background(), items); err != nil {
			logger.Warn("draft cache write failed: %v", err)
		}
	}()
}

// mutateRow runs fn on the row at index under the write lock.
func (s *DraftService) mutateRow(index int, fn func(*domain.ReconciledRow)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.rows) {
		return domain.ErrIndexOutOfRange
	}
	fn(&s.rows[index])
	return nil
}

// mutateRowByID runs fn on the row with the given ID, if it still exists.
// Used by asynchronous completions that may race with deletes.
func (s *DraftService) mutateRowByID(id string, fn func(*domain.ReconciledRow)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		if s.rows[i].ID == id {
			fn(&s.rows[i])
			return true
		}
	}
	return false
}

// mutateAll runs fn over every row under the write lock.
func (s *DraftService) mutateAll(fn func(i int, row *domain.ReconciledRow)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.rows {
		fn(i, &s.rows[i])
	}
}

// rowID returns the ID of the row at index.
func (s *DraftService) rowID(index int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.rows) {
		return "", domain.ErrIndexOutOfRange
	}
	return s.rows[index].ID, nil
}

func newRows(items []domain.LineItem) []domain.ReconciledRow {
	rows := make([]domain.ReconciledRow, len(items))
	for i, item := range items {
		rows[i] = domain.ReconciledRow{ID: uuid.NewString(), Item: item}
	}
	return rows
}
