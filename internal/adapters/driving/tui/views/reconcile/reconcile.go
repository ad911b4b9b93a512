// Package reconcile provides the Match phase view: choosing a catalog
// match per row from ranked candidates and interactive search results,
// then saving and exporting.
package reconcile

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/matchdesk/ordermatch/internal/adapters/driving/tui/components/input"
	"github.com/matchdesk/ordermatch/internal/adapters/driving/tui/keymap"
	"github.com/matchdesk/ordermatch/internal/adapters/driving/tui/messages"
	"github.com/matchdesk/ordermatch/internal/adapters/driving/tui/styles"
	"github.com/matchdesk/ordermatch/internal/core/ports/driving"
)

// selector is the candidate-picker overlay for one row. Typing into its
// input fires interactive catalog searches; the options list shows ranked
// matches first, then ad-hoc results.
type selector struct {
	index  int
	input  *input.Field
	cursor int
}

// View is the Match phase: per-row reconciliation plus export.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	draft  driving.DraftService
	match  driving.MatchService
	export driving.ExportService
	ctx    context.Context

	cursor    int
	selector  *selector
	exporting bool
	width     int
}

// NewView creates the reconcile view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	draft driving.DraftService,
	match driving.MatchService,
	export driving.ExportService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles: s,
		keymap: km,
		draft:  draft,
		match:  match,
		export: export,
		ctx:    context.Background(),
		width:  80,
	}
}

// WithContext sets the context for collaborator calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.clampCursor()
	return nil
}

// SetDimensions updates the view size.
func (v *View) SetDimensions(width, _ int) {
	v.width = width
}

// Selecting reports whether the candidate picker is open.
func (v *View) Selecting() bool {
	return v.selector != nil
}

// Update handles messages for the reconcile view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.CatalogSearchDone:
		// Results were applied by the match service (or discarded as
		// stale); just clamp the option cursor against the new list.
		if v.selector != nil && v.selector.index == msg.Index {
			v.clampOptionCursor()
		}
		return v, nil

	case messages.ExportCompleted:
		v.exporting = false
		return v, nil

	case messages.RowsChanged:
		v.clampCursor()
		return v, nil

	case tea.KeyMsg:
		if v.selector != nil {
			return v.handleSelectorKey(msg)
		}
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Up):
		if v.cursor > 0 {
			v.cursor--
		}

	case key.Matches(msg, v.keymap.Down):
		if v.cursor < v.draft.Len()-1 {
			v.cursor++
		}

	case key.Matches(msg, v.keymap.Select):
		if v.draft.Len() == 0 {
			return v, nil
		}
		sel := &selector{index: v.cursor, input: input.NewField(v.styles, "Search", "type to search the catalog...")}
		v.selector = sel
		return v, tea.Batch(sel.input.Init(), sel.input.Focus())

	case key.Matches(msg, v.keymap.Delete):
		if v.draft.Len() == 0 {
			return v, nil
		}
		if err := v.draft.Remove(v.cursor); err != nil {
			return v, nil
		}
		v.clampCursor()
		return v, func() tea.Msg { return messages.RowsChanged{} }

	case key.Matches(msg, v.keymap.Export):
		if v.exporting {
			return v, nil
		}
		v.exporting = true
		return v, v.runExport()
	}
	return v, nil
}

func (v *View) handleSelectorKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	sel := v.selector

	switch {
	case msg.Type == tea.KeyEsc:
		v.selector = nil
		return v, nil

	// Only the arrow keys navigate here: j/k must still type into the
	// search input.
	case msg.Type == tea.KeyUp:
		if sel.cursor > 0 {
			sel.cursor--
		}
		return v, nil

	case msg.Type == tea.KeyDown:
		if sel.cursor < len(v.options())-1 {
			sel.cursor++
		}
		return v, nil

	case msg.Type == tea.KeyEnter:
		// Pick the highlighted candidate; with no candidates, the typed
		// text itself becomes the selection (free text is valid).
		opts := v.options()
		name := strings.TrimSpace(sel.input.Value())
		if len(opts) > 0 && sel.cursor < len(opts) {
			name = opts[sel.cursor]
		}
		index := sel.index
		v.selector = nil
		if name == "" {
			return v, nil
		}
		if err := v.match.Select(index, name); err != nil {
			return v, nil
		}
		return v, func() tea.Msg { return messages.RowsChanged{} }
	}

	// Any other key goes to the input; each keystroke that changes the
	// query fires a catalog search. Stale responses are discarded by the
	// match service's latest-wins rule, not here.
	before := sel.input.Value()
	var cmd tea.Cmd
	sel.input, cmd = sel.input.Update(msg)
	after := sel.input.Value()

	if after != before && after != "" {
		return v, tea.Batch(cmd, v.runSearch(sel.index, after))
	}
	return v, cmd
}

// runSearch fires one interactive catalog search off the Update loop.
func (v *View) runSearch(index int, query string) tea.Cmd {
	return func() tea.Msg {
		// Failures are best-effort by contract; the service logs them.
		_ = v.match.Search(v.ctx, index, query)
		return messages.CatalogSearchDone{Index: index}
	}
}

// runExport saves remotely then writes the artifact off the Update loop.
func (v *View) runExport() tea.Cmd {
	return func() tea.Msg {
		err := v.export.ExportFile(v.ctx, "")
		return messages.ExportCompleted{Path: "order_export.csv", Err: err}
	}
}

// options returns the de-duplicated candidates for the selector's row.
func (v *View) options() []string {
	if v.selector == nil {
		return nil
	}
	opts, err := v.match.OptionsFor(v.selector.index)
	if err != nil {
		return nil
	}
	return opts
}

func (v *View) clampCursor() {
	if n := v.draft.Len(); v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *View) clampOptionCursor() {
	if v.selector == nil {
		return
	}
	if n := len(v.options()); v.selector.cursor >= n && n > 0 {
		v.selector.cursor = n - 1
	}
	if v.selector.cursor < 0 {
		v.selector.cursor = 0
	}
}

// View renders the reconcile view.
func (v *View) View() string {
	if v.selector != nil {
		return v.viewSelector()
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Match against catalog"))
	b.WriteString("\n\n")

	rows := v.draft.Rows()
	if len(rows) == 0 {
		b.WriteString(v.styles.Muted.Render("No rows to match."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("1 upload · 2 extract"))
		return b.String()
	}

	header := fmt.Sprintf("  %-34s %-30s %8s %10s %10s", "Request Item", "Match Item", "Qty", "Unit", "Total")
	b.WriteString(v.styles.Muted.Render(header))
	b.WriteString("\n")

	for i, row := range rows {
		match := row.SelectedMatch
		if match == "" {
			match = "(none)"
		}
		line := fmt.Sprintf("  %-34s %-30s %8s %10s %10s",
			truncate(row.Item.RequestItem, 34),
			truncate(match, 30),
			formatNumber(row.Item.Quantity),
			formatNumber(row.Item.UnitPrice),
			formatNumber(row.Item.TotalAmount),
		)
		if i == v.cursor {
			b.WriteString(v.styles.Selected.Render(line))
		} else if row.SelectedMatch != "" {
			b.WriteString(v.styles.Match.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.exporting {
		b.WriteString(v.styles.Muted.Render("saving final order..."))
	} else {
		b.WriteString(v.styles.Help.Render("↑/↓ move · enter pick match · d delete · s save & export"))
	}
	return b.String()
}

func (v *View) viewSelector() string {
	sel := v.selector
	rows := v.draft.Rows()

	var b strings.Builder
	title := "Pick match"
	if sel.index < len(rows) {
		title = "Pick match for: " + truncate(rows[sel.index].Item.RequestItem, 50)
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(sel.input.View())
	b.WriteString("\n\n")

	opts := v.options()
	if len(opts) == 0 {
		b.WriteString(v.styles.Muted.Render("No candidates; enter selects the typed text."))
		b.WriteString("\n")
	}
	for i, opt := range opts {
		if i == sel.cursor {
			b.WriteString(v.styles.Selected.Render("  " + opt))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + opt))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("type to search · ↑/↓ move · enter select · esc cancel"))
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
