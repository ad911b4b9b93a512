package tui

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matchdesk/ordermatch/internal/core/domain"
)

// MockDraftService implements driving.DraftService for testing.
type MockDraftService struct {
	items []domain.LineItem
	rows  []domain.ReconciledRow

	UpdateFunc func(index int, item domain.LineItem) error
	RemoveFunc func(index int) error
}

func (m *MockDraftService) Restore(context.Context) error { return nil }

func (m *MockDraftService) Load(items []domain.LineItem) {
	m.items = items
	m.rows = make([]domain.ReconciledRow, len(items))
	for i, it := range items {
		m.rows[i] = domain.ReconciledRow{Item: it}
	}
}

func (m *MockDraftService) Update(index int, item domain.LineItem) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(index, item)
	}
	if index < 0 || index >= len(m.items) {
		return domain.ErrIndexOutOfRange
	}
	m.items[index] = item
	m.rows[index].Item = item
	return nil
}

func (m *MockDraftService) Remove(index int) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(index)
	}
	if index < 0 || index >= len(m.items) {
		return domain.ErrIndexOutOfRange
	}
	m.items = append(m.items[:index], m.items[index+1:]...)
	m.rows = append(m.rows[:index], m.rows[index+1:]...)
	return nil
}

func (m *MockDraftService) Snapshot() []domain.LineItem { return m.items }

func (m *MockDraftService) Rows() []domain.ReconciledRow { return m.rows }

func (m *MockDraftService) Len() int { return len(m.items) }

// MockMatchService implements driving.MatchService for testing.
type MockMatchService struct {
	SeedFunc       func(queries []string, results domain.MatchResults) error
	SelectFunc     func(index int, name string) error
	SearchFunc     func(ctx context.Context, index int, query string) error
	OptionsForFunc func(index int) ([]string, error)
	SelectionsFunc func() []string
}

func (m *MockMatchService) Seed(queries []string, results domain.MatchResults) error {
	if m.SeedFunc != nil {
		return m.SeedFunc(queries, results)
	}
	return nil
}

func (m *MockMatchService) Select(index int, name string) error {
	if m.SelectFunc != nil {
		return m.SelectFunc(index, name)
	}
	return nil
}

func (m *MockMatchService) Search(ctx context.Context, index int, query string) error {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, index, query)
	}
	return nil
}

func (m *MockMatchService) OptionsFor(index int) ([]string, error) {
	if m.OptionsForFunc != nil {
		return m.OptionsForFunc(index)
	}
	return nil, nil
}

func (m *MockMatchService) Selections() []string {
	if m.SelectionsFunc != nil {
		return m.SelectionsFunc()
	}
	return nil
}

// MockWorkflowService implements driving.WorkflowService for testing.
type MockWorkflowService struct {
	phase  domain.Phase
	staged string

	ConfirmExtractFunc func(ctx context.Context) error
	ProceedToMatchFunc func(ctx context.Context) error
}

func (m *MockWorkflowService) StageFile(path string) { m.staged = path }

func (m *MockWorkflowService) StagedFile() string { return m.staged }

func (m *MockWorkflowService) ClearFile() { m.staged = "" }

func (m *MockWorkflowService) ConfirmExtract(ctx context.Context) error {
	if m.ConfirmExtractFunc != nil {
		return m.ConfirmExtractFunc(ctx)
	}
	m.phase = domain.PhaseExtract
	return nil
}

func (m *MockWorkflowService) ProceedToMatch(ctx context.Context) error {
	if m.ProceedToMatchFunc != nil {
		return m.ProceedToMatchFunc(ctx)
	}
	m.phase = domain.PhaseMatch
	return nil
}

func (m *MockWorkflowService) Phase() domain.Phase { return m.phase }

func (m *MockWorkflowService) SetPhase(p domain.Phase) { m.phase = p }

// MockExportService implements driving.ExportService for testing.
type MockExportService struct {
	ExportFunc     func(ctx context.Context, w io.Writer) error
	ExportFileFunc func(ctx context.Context, path string) error
}

func (m *MockExportService) Export(ctx context.Context, w io.Writer) error {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx, w)
	}
	return nil
}

func (m *MockExportService) ExportFile(ctx context.Context, path string) error {
	if m.ExportFileFunc != nil {
		return m.ExportFileFunc(ctx, path)
	}
	return nil
}

func TestPorts_Validate_AllSet(t *testing.T) {
	ports := &Ports{
		Draft:    &MockDraftService{},
		Match:    &MockMatchService{},
		Workflow: &MockWorkflowService{},
		Export:   &MockExportService{},
	}

	err := ports.Validate()

	assert.NoError(t, err)
}

func TestPorts_Validate_Nil(t *testing.T) {
	var ports *Ports

	err := ports.Validate()

	assert.Error(t, err)
}

func TestPorts_Validate_MissingDraft(t *testing.T) {
	ports := &Ports{
		Match:    &MockMatchService{},
		Workflow: &MockWorkflowService{},
		Export:   &MockExportService{},
	}

	err := ports.Validate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "draft service")
}

func TestPorts_Validate_MissingMatch(t *testing.T) {
	ports := &Ports{
		Draft:    &MockDraftService{},
		Workflow: &MockWorkflowService{},
		Export:   &MockExportService{},
	}

	err := ports.Validate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "match service")
}

func TestPorts_Validate_MissingWorkflow(t *testing.T) {
	ports := &Ports{
		Draft:  &MockDraftService{},
		Match:  &MockMatchService{},
		Export: &MockExportService{},
	}

	err := ports.Validate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "workflow service")
}

func TestPorts_Validate_MissingExport(t *testing.T) {
	ports := &Ports{
		Draft:    &MockDraftService{},
		Match:    &MockMatchService{},
		Workflow: &MockWorkflowService{},
	}

	err := ports.Validate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "export service")
}
