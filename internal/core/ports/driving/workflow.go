package driving

import (
	"context"
	"io"

	"github.com/matchdesk/ordermatch/internal/core/domain"
)

// WorkflowService drives the three-phase order workflow:
// Upload -> Extract -> Match. Transitions are gated on their collaborator
// calls; direct navigation between phases is unrestricted.
type WorkflowService interface {
	// StageFile records the PDF to extract from.
	StageFile(path string)

	// StagedFile returns the staged path, "" when none.
	StagedFile() string

	// ClearFile unstages the file.
	ClearFile()

	// ConfirmExtract sends the staged file to the extraction collaborator,
	// loads the resulting items into the draft and advances to Extract.
	// Returns domain.ErrNoFileStaged without a staged file and
	// domain.ErrExtractInProgress while one is already running. On failure
	// the phase and the draft are untouched.
	ConfirmExtract(ctx context.Context) error

	// ProceedToMatch checkpoints the draft remotely, runs the batch
	// matcher over every row and seeds the match state, then advances to
	// Match. Fails without side effects if the checkpoint or the matcher
	// fails.
	ProceedToMatch(ctx context.Context) error

	// Phase returns the current phase.
	Phase() domain.Phase

	// SetPhase navigates directly to a phase without any gating.
	SetPhase(p domain.Phase)
}

// ExportService produces the final export artifact.
type ExportService interface {
	// Export persists the reconciled rows remotely and, only on success,
	// writes the CSV serialization to w. On failure nothing is written.
	Export(ctx context.Context, w io.Writer) error

	// ExportFile runs Export into a file at path, creating it only after
	// the remote save succeeded.
	ExportFile(ctx context.Context, path string) error
}
