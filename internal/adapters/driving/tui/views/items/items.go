// Package items provides the Extract phase view: reviewing, editing and
// deleting the extracted line items, and proceeding to matching.
package items

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
	"github.com/matchdesk/ordermatch/internal/core/domain"
	"github.com/matchdesk/ordermatch/internal/core/ports/driving"
)

// editForm is the modal edit state for one row. All four fields are
// submitted together: an edit is a full row replace, with unedited fields
// carried forward via the prefilled inputs.
type editForm struct {
	index   int
	fields  []*input.Field
	focused int
}

// View is the Extract phase: the line item table with edit and delete.
type View struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	draft    driving.DraftService
	workflow driving.WorkflowService
	ctx      context.Context

	cursor  int
	form    *editForm
	loading bool
	width   int
}

// NewView creates the items view.
func NewView(s *styles.Styles, km *keymap.KeyMap, draft driving.DraftService, workflow driving.WorkflowService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:   s,
		keymap:   km,
		draft:    draft,
		workflow: workflow,
		ctx:      context.Background(),
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
	v.clampCursor()
	return nil
}

// SetDimensions updates the view size.
func (v *View) SetDimensions(width, _ int) {
	v.width = width
}

// Editing reports whether the edit form is open.
func (v *View) Editing() bool {
	return v.form != nil
}

// Update handles messages for the items view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.MatchesLoaded:
		v.loading = false
		return v, nil

	case messages.RowsChanged:
		v.clampCursor()
		return v, nil

	case tea.KeyMsg:
		if v.form != nil {
			return v.handleFormKey(msg)
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

	case key.Matches(msg, v.keymap.Edit):
		return v.openForm()

	case key.Matches(msg, v.keymap.Delete):
		if v.draft.Len() == 0 {
			return v, nil
		}
		if err := v.draft.Remove(v.cursor); err != nil {
			return v, nil
		}
		v.clampCursor()
		return v, func() tea.Msg { return messages.RowsChanged{} }

	case key.Matches(msg, v.keymap.Confirm):
		if v.loading {
			return v, nil
		}
		v.loading = true
		return v, v.proceedToMatch()
	}
	return v, nil
}

// proceedToMatch runs the checkpoint and batch matcher off the Update loop.
func (v *View) proceedToMatch() tea.Cmd {
	return func() tea.Msg {
		err := v.workflow.ProceedToMatch(v.ctx)
		return messages.MatchesLoaded{Err: err}
	}
}

func (v *View) openForm() (*View, tea.Cmd) {
	items := v.draft.Snapshot()
	if v.cursor < 0 || v.cursor >= len(items) {
		return v, nil
	}
	item := items[v.cursor]

	fields := []*input.Field{
		input.NewField(v.styles, "Item", ""),
		input.NewField(v.styles, "Quantity", ""),
		input.NewField(v.styles, "Unit Price", ""),
		input.NewField(v.styles, "Total Amount", ""),
	}
	fields[0].SetValue(item.RequestItem)
	fields[1].SetValue(formatNumber(item.Quantity))
	fields[2].SetValue(formatNumber(item.UnitPrice))
	fields[3].SetValue(formatNumber(item.TotalAmount))

	v.form = &editForm{index: v.cursor, fields: fields}
	return v, fields[0].Focus()
}

func (v *View) handleFormKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	form := v.form

	switch {
	case msg.Type == tea.KeyEsc:
		v.form = nil
		return v, nil

	case key.Matches(msg, v.keymap.NextField):
		form.fields[form.focused].Blur()
		form.focused = (form.focused + 1) % len(form.fields)
		return v, form.fields[form.focused].Focus()

	case msg.Type == tea.KeyEnter:
		item := domain.LineItem{
			RequestItem: form.fields[0].Value(),
			Quantity:    parseNumber(form.fields[1].Value()),
			UnitPrice:   parseNumber(form.fields[2].Value()),
			TotalAmount: parseNumber(form.fields[3].Value()),
		}
		index := form.index
		v.form = nil
		if err := v.draft.Update(index, item); err != nil {
			return v, nil
		}
		return v, func() tea.Msg { return messages.RowsChanged{} }
	}

	var cmd tea.Cmd
	form.fields[form.focused], cmd = form.fields[form.focused].Update(msg)
	return v, cmd
}

func (v *View) clampCursor() {
	if n := v.draft.Len(); v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// View renders the items view.
func (v *View) View() string {
	if v.form != nil {
		return v.viewForm()
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Extracted line items"))
	b.WriteString("\n\n")

	items := v.draft.Snapshot()
	if len(items) == 0 {
		b.WriteString(v.styles.Muted.Render("No line items. Extract a PDF first."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("1 upload"))
		return b.String()
	}

	header := fmt.Sprintf("  %-40s %10s %12s %12s", "Request Item", "Qty", "Unit Price", "Total")
	b.WriteString(v.styles.Muted.Render(header))
	b.WriteString("\n")

	for i, it := range items {
		line := fmt.Sprintf("  %-40s %10s %12s %12s",
			truncate(it.RequestItem, 40),
			formatNumber(it.Quantity),
			formatNumber(it.UnitPrice),
			formatNumber(it.TotalAmount),
		)
		if i == v.cursor {
			b.WriteString(v.styles.Selected.Render(line))
		} else {
			b.WriteString(v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.loading {
		b.WriteString(v.styles.Muted.Render("saving draft and loading matches..."))
	} else {
		b.WriteString(v.styles.Help.Render("↑/↓ move · e edit · d delete · c proceed to match"))
	}
	return b.String()
}

func (v *View) viewForm() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Edit line item %d", v.form.index)))
	b.WriteString("\n\n")
	for _, f := range v.form.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("tab next field · enter save · esc cancel"))
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

func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
