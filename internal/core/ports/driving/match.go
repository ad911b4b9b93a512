package driving

import (
	"context"

	"github.com/matchdesk/ordermatch/internal/core/domain"
)

// MatchService manages match candidates and selections for the draft's rows.
// It operates on the same rows as DraftService, so deletes and edits keep
// item and match state together without any separate re-keying.
type MatchService interface {
	// Seed replaces all match state from one batch matcher response.
	// queries[i] is row i's request item text; rows whose query is absent
	// from results get no candidates. The selection for each row resets to
	// its first candidate, or "" when there are none, and all ad-hoc
	// results are cleared.
	Seed(queries []string, results domain.MatchResults) error

	// Select records the chosen catalog name for a row. Arbitrary strings
	// are accepted; the selection box also takes free text.
	Select(index int, name string) error

	// Search runs an interactive catalog search for one row and, on
	// success, replaces that row's ad-hoc results. An empty query is a
	// no-op. Failures are silent: ad-hoc search is best-effort. Responses
	// arriving for a superseded query or a deleted row are discarded.
	Search(ctx context.Context, index int, query string) error

	// OptionsFor returns ranked then ad-hoc candidates for a row,
	// de-duplicated, ranked first.
	OptionsFor(index int) ([]string, error)

	// Selections returns the selected match per row, "" where unset.
	Selections() []string
}
