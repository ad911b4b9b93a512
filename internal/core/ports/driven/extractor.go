package driven

import (
	"context"
	"io"

	"github.com/matchdesk/ordermatch/internal/core/domain"
)

// Extractor sends a PDF to the extraction collaborator and returns the
// structured line items it found, in document order.
type Extractor interface {
	// Extract posts the file contents and returns the extracted items.
	// The filename travels with the upload so the collaborator can key
	// its own records by it.
	Extract(ctx context.Context, filename string, file io.Reader) ([]domain.LineItem, error)
}
