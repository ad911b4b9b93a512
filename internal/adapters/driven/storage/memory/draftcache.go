// Package memory provides in-memory driven adapters for testing and for
// running without a durable cache.
package memory

import (
	"context"
	"sync"

	"github.com/matchdesk/ordermatch/internal/core/domain"
	"github.com/matchdesk/ordermatch/internal/core/ports/driven"
)

// Ensure DraftCache implements the interface.
var _ driven.DraftCache = (*DraftCache)(nil)

// DraftCache is an in-memory implementation of driven.DraftCache.
type DraftCache struct {
	mu    sync.RWMutex
	items []domain.LineItem
}

// NewDraftCache creates an empty in-memory draft cache.
func NewDraftCache() *DraftCache {
	return &DraftCache{}
}

// Write replaces the cached snapshot with a copy of items.
func (c *DraftCache) Write(_ context.Context, items []domain.LineItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]domain.LineItem(nil), items...)
	return nil
}

// Read returns a copy of the cached snapshot; empty before the first Write.
func (c *DraftCache) Read(_ context.Context) ([]domain.LineItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.items == nil {
		return []domain.LineItem{}, nil
	}
	return append([]domain.LineItem(nil), c.items...), nil
}
