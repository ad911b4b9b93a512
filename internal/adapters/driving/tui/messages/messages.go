// Package messages defines Bubbletea message types for the TUI.
// Messages represent completions of asynchronous collaborator calls; the
// Bubbletea runtime applies them to shared state one at a time, so readers
// never observe a half-applied update.
package messages

import (
	"github.com/matchdesk/ordermatch/internal/core/domain"
)

// ExtractCompleted reports the outcome of a confirm-extraction action.
type ExtractCompleted struct {
	Count int
	Err   error
}

// MatchesLoaded reports the outcome of a proceed-to-match action: the
// draft checkpoint plus the batch match call.
type MatchesLoaded struct {
	Err error
}

// CatalogSearchDone reports that an interactive catalog search finished.
// Results (if any, and if still the latest for the row) have already been
// applied by the match service; the view just needs to re-render.
type CatalogSearchDone struct {
	Index int
}

// ExportCompleted reports the outcome of a save-and-export action.
type ExportCompleted struct {
	Path string
	Err  error
}

// PhaseChanged reports that the workflow phase moved, after a successful
// extraction or match load. The app re-initialises the newly active view.
type PhaseChanged struct {
	Phase domain.Phase
}

// RowsChanged signals that the draft was mutated (edit, delete) and every
// phase view should re-read its rows.
type RowsChanged struct{}
