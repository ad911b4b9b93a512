package domain

// ReconciledRow is a line item together with all of its match state.
// Keeping the item and its matches in one record means a delete or reorder
// is a single splice of one slice; there is no parallel-array re-keying to
// get wrong, and matches travel with their row through edits.
type ReconciledRow struct {
	// ID is an opaque identifier assigned when the row enters the draft.
	// Display and mutation are positional; the ID exists so that in-flight
	// asynchronous work (catalog searches) can be matched back to a row
	// even after deletes have shifted positions.
	ID string

	// Item is the line item itself.
	Item LineItem

	// RankedMatches are catalog candidate names from the batch matcher,
	// best first. Empty when the matcher had no candidates for this row.
	RankedMatches []string

	// SelectedMatch is the user's chosen catalog name for this row.
	// Defaults to RankedMatches[0] at seed time, "" when there are none.
	// Free text is allowed; it need not appear in any candidate list.
	SelectedMatch string

	// AdHocResults are candidates from an interactive per-row catalog
	// search. They supplement RankedMatches, never replace them.
	AdHocResults []string
}

// Options returns the candidate names to offer for this row: ranked
// matches first, then ad-hoc search results, de-duplicated.
func (r *ReconciledRow) Options() []string {
	seen := make(map[string]struct{}, len(r.RankedMatches)+len(r.AdHocResults))
	opts := make([]string, 0, len(r.RankedMatches)+len(r.AdHocResults))
	for _, lists := range [][]string{r.RankedMatches, r.AdHocResults} {
		for _, name := range lists {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			opts = append(opts, name)
		}
	}
	return opts
}

// Finalize pairs the row's item with its selected match.
func (r *ReconciledRow) Finalize() FinalizedItem {
	return FinalizedItem{
		RequestItem: r.Item.RequestItem,
		MatchItem:   r.SelectedMatch,
		Quantity:    r.Item.Quantity,
		UnitPrice:   r.Item.UnitPrice,
		TotalAmount: r.Item.TotalAmount,
	}
}
