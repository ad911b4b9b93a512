package driven

import (
	"context"

	"github.com/matchdesk/ordermatch/internal/core/domain"
)

// Matcher is the batch matching collaborator. One call covers every row
// of the draft at once.
type Matcher interface {
	// MatchBatch returns ranked catalog candidates per query, best first.
	// Queries the matcher has no candidates for are absent from the result.
	MatchBatch(ctx context.Context, queries []string) (domain.MatchResults, error)
}

// CatalogSearcher is the interactive catalog search collaborator, driven
// by per-row user typing.
type CatalogSearcher interface {
	// Search returns up to limit catalog item names for the query.
	Search(ctx context.Context, query string, limit int) ([]string, error)
}
