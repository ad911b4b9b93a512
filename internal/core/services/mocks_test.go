package services

import (
	"context"
	"io"
	"sync"

	"github.com/matchdesk/ordermatch/internal/core/domain"
)

// --- Mock implementations of the driven ports ---

// mockExtractor implements driven.Extractor for testing.
type mockExtractor struct {
	items      []domain.LineItem
	err        error
	calls      int
	lastName   string
	lastUpload []byte
}

func (m *mockExtractor) Extract(_ context.Context, filename string, file io.Reader) ([]domain.LineItem, error) {
	m.calls++
	m.lastName = filename
	m.lastUpload, _ = io.ReadAll(file)
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

// mockMatcher implements driven.Matcher for testing.
type mockMatcher struct {
	results     domain.MatchResults
	err         error
	calls       int
	lastQueries []string
}

func (m *mockMatcher) MatchBatch(_ context.Context, queries []string) (domain.MatchResults, error) {
	m.calls++
	m.lastQueries = queries
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

// mockCatalog implements driven.CatalogSearcher for testing. When fn is
// set it controls the response per call, which lets tests sequence
// overlapping searches.
type mockCatalog struct {
	mu      sync.Mutex
	names   []string
	err     error
	fn      func(ctx context.Context, query string, limit int) ([]string, error)
	queries []string
}

func (m *mockCatalog) Search(ctx context.Context, query string, limit int) ([]string, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	fn := m.fn
	names, err := m.names, m.err
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, query, limit)
	}
	return names, err
}

// mockGateway implements driven.OrderGateway for testing.
type mockGateway struct {
	draftErr   error
	finalErr   error
	draftCalls int
	finalCalls int
	lastOrder  string
	lastItems  []domain.LineItem
	lastFinal  []domain.FinalizedItem
}

func (m *mockGateway) SaveDraft(_ context.Context, orderID string, items []domain.LineItem) error {
	m.draftCalls++
	m.lastOrder = orderID
	m.lastItems = items
	return m.draftErr
}

func (m *mockGateway) SaveFinal(_ context.Context, orderID string, items []domain.FinalizedItem) error {
	m.finalCalls++
	m.lastOrder = orderID
	m.lastFinal = items
	return m.finalErr
}

// failingCache implements driven.DraftCache and always fails, for
// exercising the best-effort mirror path.
type failingCache struct {
	err error
}

func (c *failingCache) Write(context.Context, []domain.LineItem) error { return c.err }

func (c *failingCache) Read(context.Context) ([]domain.LineItem, error) {
	return nil, c.err
}

// gatedCache implements driven.DraftCache and stalls the write of the
// initial 3-item snapshot until released, for exercising out-of-order
// mirror completions.
type gatedCache struct {
	mu      sync.Mutex
	items   []domain.LineItem
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (c *gatedCache) Write(_ context.Context, items []domain.LineItem) error {
	if len(items) == 3 {
		c.once.Do(func() { close(c.entered) })
		<-c.release
	}
	c.mu.Lock()
	c.items = items
	c.mu.Unlock()
	return nil
}

func (c *gatedCache) Read(context.Context) ([]domain.LineItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items, nil
}

// testItems returns a small draft for tests.
func testItems() []domain.LineItem {
	return []domain.LineItem{
		{RequestItem: "Bolt M6", Quantity: 10, UnitPrice: 0.5, TotalAmount: 5},
		{RequestItem: "Washer M6", Quantity: 100, UnitPrice: 0.05, TotalAmount: 5},
		{RequestItem: "Nut M6", Quantity: 50, UnitPrice: 0.1, TotalAmount: 5},
	}
}
