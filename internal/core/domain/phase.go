package domain

// Phase identifies a step of the order workflow. The normal flow is
// Upload -> Extract -> Match, but navigation is free: a user may jump to
// any phase at any time (a Match phase over an empty draft simply shows
// no rows).
type Phase int

const (
	// PhaseUpload is where a PDF is staged for extraction.
	PhaseUpload Phase = iota
	// PhaseExtract is where extracted line items are reviewed and edited.
	PhaseExtract
	// PhaseMatch is where rows are reconciled against the catalog.
	PhaseMatch
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseUpload:
		return "upload"
	case PhaseExtract:
		return "extract"
	case PhaseMatch:
		return "match"
	default:
		return "unknown"
	}
}
