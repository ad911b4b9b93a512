package driven

import (
	"context"

	"github.com/matchdesk/ordermatch/internal/core/domain"
)

// OrderGateway persists order state with the remote order service.
// Both operations are required checkpoints: SaveDraft gates the transition
// into matching, SaveFinal gates export.
type OrderGateway interface {
	// SaveDraft checkpoints the full row set under the order identifier.
	SaveDraft(ctx context.Context, orderID string, items []domain.LineItem) error

	// SaveFinal persists the fully reconciled rows. Export must not emit
	// an artifact unless this succeeds.
	SaveFinal(ctx context.Context, orderID string, items []domain.FinalizedItem) error
}

// DraftCache is the local, best-effort snapshot of the draft under a fixed
// key. It survives process restarts; match state is never cached.
type DraftCache interface {
	// Write replaces the cached snapshot with items.
	Write(ctx context.Context, items []domain.LineItem) error

	// Read returns the cached snapshot. A first run with no prior cache
	// yields an empty slice, not an error.
	Read(ctx context.Context) ([]domain.LineItem, error)
}
