package tui

import (
	"errors"

	"github.com/matchdesk/ordermatch/internal/core/ports/driving"
)

// Ports bundles the driving ports the TUI needs.
type Ports struct {
	// Draft manages the line items.
	Draft driving.DraftService

	// Match manages candidates and selections.
	Match driving.MatchService

	// Workflow drives the phase transitions.
	Workflow driving.WorkflowService

	// Export produces the final artifact.
	Export driving.ExportService
}

// Validate checks that all required ports are present.
func (p *Ports) Validate() error {
	if p == nil {
		return errors.New("ports are required")
	}
	if p.Draft == nil {
		return errors.New("draft service is required")
	}
	if p.Match == nil {
		return errors.New("match service is required")
	}
	if p.Workflow == nil {
		return errors.New("workflow service is required")
	}
	if p.Export == nil {
		return errors.New("export service is required")
	}
	return nil
}
