// Package upload provides the Upload phase view: staging a PDF and
// confirming extraction.
package upload

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/matchdesk/ordermatch/internal/adapters/driving/tui/components/input"
	"github.com/matchdesk/ordermatch/internal/adapters/driving/tui/keymap"
	"github.com/matchdesk/ordermatch/internal/adapters/driving/tui/messages"
	"github.com/matchdesk/ordermatch/internal/adapters/driving/tui/styles"
	"github.com/matchdesk/ordermatch/internal/core/ports/driving"
)

// View is the Upload phase: type a PDF path, stage it, confirm extraction.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	input    *input.Field
	workflow driving.WorkflowService
	ctx      context.Context

	spinner    spinner.Model
	extracting bool
	width      int
}

// NewView creates the upload view.
func NewView(s *styles.Styles, km *keymap.KeyMap, workflow driving.WorkflowService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Title

	return &View{
		styles:   s,
		keymap:   km,
		input:    input.NewField(s, "PDF", "path/to/order.pdf"),
		workflow: workflow,
		ctx:      context.Background(),
		spinner:  sp,
		width:    80,
	}
}

// WithContext sets the context for collaborator calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.input.Focus())
}

// SetDimensions updates the view size.
func (v *View) SetDimensions(width, _ int) {
	v.width = width
	v.input.SetWidth(width / 2)
}

// Extracting reports whether an extraction call is in flight.
func (v *View) Extracting() bool {
	return v.extracting
}

// Typing reports whether the path input owns the keyboard.
func (v *View) Typing() bool {
	return v.input.Focused()
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !v.extracting {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case messages.ExtractCompleted:
		v.extracting = false
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		path := strings.TrimSpace(v.input.Value())
		if path != "" {
			v.workflow.StageFile(path)
			v.input.Blur()
		}
		return v, nil

	case !v.input.Focused() && key.Matches(msg, v.keymap.Clear):
		v.workflow.ClearFile()
		v.input.Reset()
		return v, v.input.Focus()

	case !v.input.Focused() && key.Matches(msg, v.keymap.Confirm):
		if v.extracting {
			return v, nil
		}
		v.extracting = true
		return v, tea.Batch(v.spinner.Tick, v.confirmExtract())

	case !v.input.Focused() && key.Matches(msg, v.keymap.Edit):
		return v, v.input.Focus()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// confirmExtract runs the extraction collaborator off the Update loop.
func (v *View) confirmExtract() tea.Cmd {
	return func() tea.Msg {
		err := v.workflow.ConfirmExtract(v.ctx)
		return messages.ExtractCompleted{Err: err}
	}
}

// View renders the upload view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Upload purchase order"))
	b.WriteString("\n\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	if staged := v.workflowStaged(); staged != "" {
		b.WriteString(v.styles.Success.Render("Staged: " + staged))
	} else {
		b.WriteString(v.styles.Muted.Render("No file staged."))
	}
	b.WriteString("\n\n")

	if v.extracting {
		b.WriteString(v.spinner.View() + v.styles.Normal.Render(" extracting..."))
	} else {
		b.WriteString(v.styles.Help.Render("enter stage · c confirm extraction · x clear · e edit path"))
	}

	return b.String()
}

func (v *View) workflowStaged() string {
	if v.workflow == nil {
		return ""
	}
	return v.workflow.StagedFile()
}
