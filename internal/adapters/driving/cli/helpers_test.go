package cli

import (
	"context"
	"io"

	"github.com/matchdesk/ordermatch/internal/adapters/driven/storage/memory"
	"github.com/matchdesk/ordermatch/internal/core/domain"
	"github.com/matchdesk/ordermatch/internal/core/services"
)

// stubBackend stands in for the order backend across all driven ports.
type stubBackend struct {
	extractItems []domain.LineItem
	savedDraft   []domain.LineItem
	savedFinal   []domain.FinalizedItem
}

func (s *stubBackend) Extract(_ context.Context, _ string, file io.Reader) ([]domain.LineItem, error) {
	_, _ = io.ReadAll(file)
	return s.extractItems, nil
}

func (s *stubBackend) MatchBatch(_ context.Context, queries []string) (domain.MatchResults, error) {
	results := make(domain.MatchResults, len(queries))
	for _, q := range queries {
		results[q] = []domain.MatchCandidate{{Match: q + " (catalog)", Score: 0.9}}
	}
	return results, nil
}

func (s *stubBackend) Search(_ context.Context, query string, _ int) ([]string, error) {
	return []string{query + " (catalog)"}, nil
}

func (s *stubBackend) SaveDraft(_ context.Context, _ string, items []domain.LineItem) error {
	s.savedDraft = items
	return nil
}

func (s *stubBackend) SaveFinal(_ context.Context, _ string, items []domain.FinalizedItem) error {
	s.savedFinal = items
	return nil
}

// setupTestServices wires the package-level services against in-memory
// stubs and disables the persistent init/teardown hooks so commands run
// hermetically. The returned cleanup restores everything.
func setupTestServices() func() {
	oldDraft := draftService
	oldMatch := matchService
	oldWorkflow := workflowService
	oldExport := exportService
	oldPreRun := rootCmd.PersistentPreRunE
	oldPostRun := rootCmd.PersistentPostRun

	backend := &stubBackend{
		extractItems: []domain.LineItem{
			{RequestItem: "Bolt M6", Quantity: 10, UnitPrice: 0.5, TotalAmount: 5},
			{RequestItem: "Washer M6", Quantity: 20, UnitPrice: 0.1, TotalAmount: 2},
		},
	}

	draftService = services.NewDraftService(memory.NewDraftCache())
	matchService = services.NewMatchService(draftService, backend, 10)
	workflowService = services.NewWorkflowService(draftService, matchService, backend, backend, backend, "test-order")
	exportService = services.NewExportService(draftService, backend, "test-order")
	rootCmd.PersistentPreRunE = nil
	rootCmd.PersistentPostRun = nil

	return func() {
		draftService = oldDraft
		matchService = oldMatch
		workflowService = oldWorkflow
		exportService = oldExport
		rootCmd.PersistentPreRunE = oldPreRun
		rootCmd.PersistentPostRun = oldPostRun
	}
}
