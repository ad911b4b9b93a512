package driving

import (
	"context"

	"github.com/matchdesk/ordermatch/internal/core/domain"
)

// DraftService manages the ordered line items of the current order draft.
// Row identity is positional: index i always refers to the i-th row as
// currently displayed. Every successful mutation is mirrored to the local
// cache on a best-effort basis.
type DraftService interface {
	// Restore populates the draft from the local cache. An absent cache
	// leaves the draft empty.
	Restore(ctx context.Context) error

	// Load replaces the whole draft, clearing all match state.
	Load(items []domain.LineItem)

	// Update replaces the item at index in full. All four fields must be
	// carried forward by the caller; this is not a partial patch.
	// The row's match state is preserved.
	Update(index int, item domain.LineItem) error

	// Remove deletes the row at index; later rows shift down by one and
	// the row's match state disappears with it.
	Remove(index int) error

	// Snapshot returns a copy of the current items.
	Snapshot() []domain.LineItem

	// Rows returns a copy of the current rows with their match state.
	Rows() []domain.ReconciledRow

	// Len returns the number of rows.
	Len() int
}
