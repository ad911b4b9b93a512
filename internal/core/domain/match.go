package domain

// MatchCandidate is one catalog candidate from the batch matcher.
type MatchCandidate struct {
	// Match is the catalog item name.
	Match string `json:"match"`

	// Score is the matcher's relevance score. It is only used by the
	// matcher for its own ordering; the core keeps the order, not the score.
	Score float64 `json:"score"`
}

// MatchResults maps a query string (a row's request item text) to its
// candidates, best first. Queries absent from the map had no candidates.
type MatchResults map[string][]MatchCandidate

// Names returns the candidate names for a query, preserving order.
// A query with no entry yields nil.
func (m MatchResults) Names(query string) []string {
	candidates, ok := m[query]
	if !ok || len(candidates) == 0 {
		return nil
	}
	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Match
	}
	return names
}
