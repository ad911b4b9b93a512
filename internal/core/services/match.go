package services

import (
	"context"
	"sync"

	"github.com/matchdesk/ordermatch/internal/core/domain"
	"github.com/matchdesk/ordermatch/internal/core/ports/driven"
	"github.com/matchdesk/ordermatch/internal/core/ports/driving"
	"github.com/matchdesk/ordermatch/internal/logger"
)

// Ensure MatchService implements the interface.
var _ driving.MatchService = (*MatchService)(nil)

// DefaultSearchLimit caps interactive catalog search results per request.
const DefaultSearchLimit = 10

// MatchService manages ranked matches, selections and ad-hoc search
// results for the draft's rows. All state lives on the draft's rows; this
// service adds the matcher/searcher orchestration on top.
type MatchService struct {
	draft   *DraftService
	catalog driven.CatalogSearcher
	limit   int

	// seq tracks the newest issued search per row ID. A response is
	// applied only if it carries the latest sequence number for its row,
	// so stale responses arriving out of order are discarded instead of
	// overwriting newer results.
	mu  sync.Mutex
	seq map[string]uint64
}

// NewMatchService creates a match service over the draft. catalog may be
// nil, in which case interactive search is disabled (a silent no-op, like
// any other ad-hoc search failure).
func NewMatchService(draft *DraftService, catalog driven.CatalogSearcher, limit int) *MatchService {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	return &MatchService{
		draft:   draft,
		catalog: catalog,
		limit:   limit,
		seq:     make(map[string]uint64),
	}
}

// Seed replaces all match state from one batch matcher response. Row i
// gets the candidates for queries[i]; absent queries yield no candidates.
// Selections reset to the first candidate or "", and ad-hoc results clear.
// Prior state never survives a seed.
func (s *MatchService) Seed(queries []string, results domain.MatchResults) error {
	s.draft.mutateAll(func(i int, row *domain.ReconciledRow) {
		var names []string
		if i < len(queries) {
			names = results.Names(queries[i])
		}
		row.RankedMatches = names
		row.AdHocResults = nil
		if len(names) > 0 {
			row.SelectedMatch = names[0]
		} else {
			row.SelectedMatch = ""
		}
	})
	s.mu.Lock()
	s.seq = make(map[string]uint64)
	s.mu.Unlock()
	return nil
}

// Select records the chosen catalog name for the row at index. The name is
// not validated against the candidate lists; free text is a valid choice.
func (s *MatchService) Select(index int, name string) error {
	return s.draft.mutateRow(index, func(row *domain.ReconciledRow) {
		row.SelectedMatch = name
	})
}

// Search runs an interactive catalog search for the row at index and, on
// success, replaces its ad-hoc results. Empty queries are a no-op. The
// newest issued search per row wins; anything else is discarded, including
// responses for rows deleted while the call was in flight. Collaborator
// failures are logged at verbose level only.
func (s *MatchService) Search(ctx context.Context, index int, query string) error {
	if query == "" {
		return nil
	}
	id, err := s.draft.rowID(index)
	if err != nil {
		return err
	}
	if s.catalog == nil {
		return nil
	}

	s.mu.Lock()
	s.seq[id]++
	issued := s.seq[id]
	s.mu.Unlock()

	names, err := s.catalog.Search(ctx, query, s.limit)
	if err != nil {
		logger.Warn("catalog search %q failed: %v", query, err)
		return nil
	}

	// Check and apply under one critical section: a newer search cannot
	// bump the sequence number between the check passing and the results
	// landing on the row.
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq[id] != issued {
		logger.Debug("discarding stale catalog results for query %q", query)
		return nil
	}
	s.draft.mutateRowByID(id, func(row *domain.ReconciledRow) {
		row.AdHocResults = names
	})
	return nil
}

// OptionsFor returns the candidates to offer for the row at index:
// ranked matches first, then ad-hoc results, de-duplicated.
func (s *MatchService) OptionsFor(index int) ([]string, error) {
	rows := s.draft.Rows()
	if index < 0 || index >= len(rows) {
		return nil, domain.ErrIndexOutOfRange
	}
	return rows[index].Options(), nil
}

// Selections returns the selected match per row, "" where unset.
func (s *MatchService) Selections() []string {
	rows := s.draft.Rows()
	selected := make([]string, len(rows))
	for i, r := range rows {
		selected[i] = r.SelectedMatch
	}
	return selected
}
