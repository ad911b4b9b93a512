// Package tui implements the interactive three-phase session following
// the Elm architecture. All mutations of the draft and its match state are
// applied on the Bubbletea update loop, one completion message at a time;
// collaborator calls run as commands off the loop.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matchdesk/ordermatch/internal/adapters/driving/tui/keymap"
	"github.com/matchdesk/ordermatch/internal/adapters/driving/tui/messages"
	"github.com/matchdesk/ordermatch/internal/adapters/driving/tui/styles"
	"github.com/matchdesk/ordermatch/internal/adapters/driving/tui/views/items"
	"github.com/matchdesk/ordermatch/internal/adapters/driving/tui/views/reconcile"
	"github.com/matchdesk/ordermatch/internal/adapters/driving/tui/views/upload"
	"github.com/matchdesk/ordermatch/internal/core/domain"
)

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// App is the main TUI application.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	uploadView    *upload.View
	itemsView     *items.View
	reconcileView *reconcile.View

	status string
	err    error
	width  int
	height int
	ready  bool
}

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		keymap:        km,
		uploadView:    upload.NewView(s, km, ports.Workflow),
		itemsView:     items.NewView(s, km, ports.Draft, ports.Workflow),
		reconcileView: reconcile.NewView(s, km, ports.Draft, ports.Match, ports.Export),
	}, nil
}

// WithContext sets the context for collaborator calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.uploadView.WithContext(ctx)
	a.itemsView.WithContext(ctx)
	a.reconcileView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("ordermatch - Process Order"),
		a.uploadView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.uploadView.SetDimensions(msg.Width, msg.Height)
		a.itemsView.SetDimensions(msg.Width, msg.Height)
		a.reconcileView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.ExtractCompleted:
		var cmds []tea.Cmd
		if msg.Err != nil {
			a.err = msg.Err
			a.status = ""
		} else {
			a.err = nil
			a.status = fmt.Sprintf("Extraction complete: %d line items.", a.ports.Draft.Len())
			cmds = append(cmds, a.announcePhase())
		}
		var cmd tea.Cmd
		a.uploadView, cmd = a.uploadView.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case messages.MatchesLoaded:
		var cmds []tea.Cmd
		if msg.Err != nil {
			a.err = msg.Err
			a.status = ""
		} else {
			a.err = nil
			a.status = "Matches loaded."
			cmds = append(cmds, a.announcePhase())
		}
		var cmd tea.Cmd
		a.itemsView, cmd = a.itemsView.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case messages.ExportCompleted:
		if msg.Err != nil {
			a.err = msg.Err
			a.status = ""
		} else {
			a.err = nil
			a.status = "Final data saved; exported " + msg.Path + "."
		}
		var cmd tea.Cmd
		a.reconcileView, cmd = a.reconcileView.Update(msg)
		return a, cmd

	case messages.RowsChanged:
		// Draft mutation: every phase view re-reads its rows.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.itemsView, cmd = a.itemsView.Update(msg)
		cmds = append(cmds, cmd)
		a.reconcileView, cmd = a.reconcileView.Update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case messages.PhaseChanged:
		a.ports.Workflow.SetPhase(msg.Phase)
		return a, a.activeInit()
	}

	return a.forward(msg)
}

// handleKey routes keys: global bindings first, then the active phase view.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	typing := a.typing()
	if !typing {
		switch {
		case key.Matches(msg, a.keymap.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keymap.PhaseUpload):
			return a.switchPhase(domain.PhaseUpload)
		case key.Matches(msg, a.keymap.PhaseExtract):
			return a.switchPhase(domain.PhaseExtract)
		case key.Matches(msg, a.keymap.PhaseMatch):
			return a.switchPhase(domain.PhaseMatch)
		}
	}

	return a.forward(msg)
}

// typing reports whether a text input currently owns the keyboard, in
// which case phase-jump and quit letters must pass through as characters.
func (a *App) typing() bool {
	switch a.ports.Workflow.Phase() {
	case domain.PhaseUpload:
		return a.uploadView.Typing()
	case domain.PhaseExtract:
		return a.itemsView.Editing()
	case domain.PhaseMatch:
		return a.reconcileView.Selecting()
	default:
		return false
	}
}

// announcePhase emits a PhaseChanged for the workflow's current phase.
// Successful extraction and match loading advance the phase inside the
// workflow service; the message routes back through Update so the newly
// active view gets its Init.
func (a *App) announcePhase() tea.Cmd {
	phase := a.ports.Workflow.Phase()
	return func() tea.Msg {
		return messages.PhaseChanged{Phase: phase}
	}
}

func (a *App) switchPhase(p domain.Phase) (tea.Model, tea.Cmd) {
	a.ports.Workflow.SetPhase(p)
	a.status = ""
	a.err = nil
	return a, a.activeInit()
}

func (a *App) activeInit() tea.Cmd {
	switch a.ports.Workflow.Phase() {
	case domain.PhaseExtract:
		return a.itemsView.Init()
	case domain.PhaseMatch:
		return a.reconcileView.Init()
	default:
		return a.uploadView.Init()
	}
}

// forward sends a message to the active phase view. A successful
// extraction or match load changes the phase inside the workflow service,
// so routing always consults it fresh.
func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.ports.Workflow.Phase() {
	case domain.PhaseExtract:
		a.itemsView, cmd = a.itemsView.Update(msg)
	case domain.PhaseMatch:
		a.reconcileView, cmd = a.reconcileView.Update(msg)
	default:
		a.uploadView, cmd = a.uploadView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "loading..."
	}

	var b strings.Builder
	b.WriteString(a.viewTabs())
	b.WriteString("\n\n")

	switch a.ports.Workflow.Phase() {
	case domain.PhaseExtract:
		b.WriteString(a.itemsView.View())
	case domain.PhaseMatch:
		b.WriteString(a.reconcileView.View())
	default:
		b.WriteString(a.uploadView.View())
	}

	b.WriteString("\n\n")
	switch {
	case a.err != nil:
		b.WriteString(a.styles.Error.Render("Error: " + a.err.Error()))
	case a.status != "":
		b.WriteString(a.styles.Success.Render(a.status))
	default:
		b.WriteString(a.styles.Help.Render("1/2/3 switch phase · ctrl+c quit"))
	}
	return b.String()
}

// viewTabs renders the phase tab bar.
func (a *App) viewTabs() string {
	current := a.ports.Workflow.Phase()
	tabs := make([]string, 0, 3)
	for _, p := range []domain.Phase{domain.PhaseUpload, domain.PhaseExtract, domain.PhaseMatch} {
		label := fmt.Sprintf("%d %s", int(p)+1, p.String())
		if p == current {
			tabs = append(tabs, a.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, a.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
}
