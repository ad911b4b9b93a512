package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matchdesk/ordermatch/internal/core/domain"
	"github.com/matchdesk/ordermatch/internal/core/ports/driven"
	"github.com/matchdesk/ordermatch/internal/core/ports/driving"
	"github.com/matchdesk/ordermatch/internal/logger"
)

// Ensure WorkflowService implements the interface.
var _ driving.WorkflowService = (*WorkflowService)(nil)

// WorkflowService drives the Upload -> Extract -> Match workflow.
// Each forward transition is gated on its collaborator calls succeeding;
// on any failure the phase and the draft are left exactly as they were.
type WorkflowService struct {
	draft     *DraftService
	match     *MatchService
	extractor driven.Extractor
	matcher   driven.Matcher
	gateway   driven.OrderGateway
	orderID   string

	mu         sync.Mutex
	phase      domain.Phase
	stagedFile string
	extracting bool
}

// NewWorkflowService creates a workflow starting in the Upload phase.
func NewWorkflowService(
	draft *DraftService,
	match *MatchService,
	extractor driven.Extractor,
	matcher driven.Matcher,
	gateway driven.OrderGateway,
	orderID string,
) *WorkflowService {
	return &WorkflowService{
		draft:     draft,
		match:     match,
		extractor: extractor,
		matcher:   matcher,
		gateway:   gateway,
		orderID:   orderID,
		phase:     domain.PhaseUpload,
	}
}

// StageFile records the PDF to extract from.
func (s *WorkflowService) StageFile(path string) {
	s.mu.Lock()
	s.stagedFile = path
	s.mu.Unlock()
}

// StagedFile returns the staged path, "" when none.
func (s *WorkflowService) StagedFile() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stagedFile
}

// ClearFile unstages the file.
func (s *WorkflowService) ClearFile() {
	s.mu.Lock()
	s.stagedFile = ""
	s.mu.Unlock()
}

// ConfirmExtract sends the staged file to the extraction collaborator,
// loads the result into the draft and advances to Extract. While a call is
// in flight further confirms fail with ErrExtractInProgress.
func (s *WorkflowService) ConfirmExtract(ctx context.Context) error {
	s.mu.Lock()
	if s.stagedFile == "" {
		s.mu.Unlock()
		return domain.ErrNoFileStaged
	}
	if s.extracting {
		s.mu.Unlock()
		return domain.ErrExtractInProgress
	}
	s.extracting = true
	path := s.stagedFile
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.extracting = false
		s.mu.Unlock()
	}()

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening staged file: %w", err)
	}
	defer f.Close()

	items, err := s.extractor.Extract(ctx, filepath.Base(path), f)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	logger.Info("extracted %d line items from %s", len(items), filepath.Base(path))
	s.draft.Load(items)
	s.SetPhase(domain.PhaseExtract)
	return nil
}

// ProceedToMatch checkpoints the draft remotely, runs the batch matcher
// over every row's request item and seeds the match state, then advances
// to Match. The checkpoint comes first: matching never proceeds against an
// unsaved draft.
func (s *WorkflowService) ProceedToMatch(ctx context.Context) error {
	items := s.draft.Snapshot()

	if err := s.gateway.SaveDraft(ctx, s.orderID, items); err != nil {
		return fmt.Errorf("draft checkpoint failed: %w", err)
	}

	queries := make([]string, len(items))
	for i, item := range items {
		queries[i] = item.RequestItem
	}

	results, err := s.matcher.MatchBatch(ctx, queries)
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	if err := s.match.Seed(queries, results); err != nil {
		return err
	}
	s.SetPhase(domain.PhaseMatch)
	return nil
}

// Phase returns the current phase.
func (s *WorkflowService) Phase() domain.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// SetPhase navigates directly to a phase. Navigation is unrestricted;
// jumping to Match with an empty draft simply shows no rows.
func (s *WorkflowService) SetPhase(p domain.Phase) {
	s.mu.Lock()
	s.phase = p
	s.mu.Unlock()
}
