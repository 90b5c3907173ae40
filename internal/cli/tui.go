package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/flamelens/pkg/render/flame"
	"github.com/matzehuels/flamelens/pkg/render/flame/layout"
	"github.com/matzehuels/flamelens/pkg/render/flame/styles"
	"github.com/matzehuels/flamelens/pkg/render/flame/view"
	"github.com/matzehuels/flamelens/pkg/stack"
)

// Screen rows reserved above and below the flame area.
const (
	headerRows = 2
	footerRows = 2
)

// viewParams configures the interactive viewer.
type viewParams struct {
	title    string
	focus    string
	search   string
	flip     bool
	style    styles.Style
	debounce time.Duration
}

// relayoutMsg fires after the resize debounce. gen identifies the resize it
// belongs to; a stale generation means a newer resize superseded it.
type relayoutMsg struct {
	gen int
}

// rowSeg is one frame's horizontal extent on a rendered band row, in screen
// columns [x0, x1).
type rowSeg struct {
	id          int32
	x0, x1      int
	name        string
	color       string
	highlighted bool
	faded       bool
	cursor      bool
}

// =============================================================================
// viewModel - Interactive flame graph
// =============================================================================

// viewModel is the bubbletea model for the interactive flame view. The tree
// is immutable; layout and view state live here, confined to the update loop.
type viewModel struct {
	tree   *stack.Tree
	params viewParams

	lay *layout.Layout
	vw  *view.View

	width   int // terminal columns
	height  int // terminal rows
	flipped bool

	// Pending terminal size, adopted when the debounce tick lands.
	pendingWidth  int
	pendingHeight int
	resizeGen     int

	// Search prompt state.
	searching bool
	input     []rune
}

// newViewModel builds the initial model. Geometry waits for the first
// WindowSizeMsg, which bubbletea delivers before the first render.
func newViewModel(t *stack.Tree, params viewParams) viewModel {
	if params.style == nil {
		params.style = styles.Classic{}
	}
	return viewModel{tree: t, params: params, flipped: params.flip}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			if id, ok := m.blockAt(msg.X, msg.Y); ok {
				m.vw.ZoomTo(id)
				m.vw.SetCursor(id)
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.pendingWidth, m.pendingHeight = msg.Width, msg.Height
		if m.lay == nil {
			return m.applyResize(), nil
		}
		m.resizeGen++
		gen := m.resizeGen
		return m, tea.Tick(m.params.debounce, func(time.Time) tea.Msg {
			return relayoutMsg{gen: gen}
		})

	case relayoutMsg:
		if msg.gen != m.resizeGen {
			return m, nil // superseded by a newer resize
		}
		return m.applyResize(), nil
	}
	return m, nil
}

// updateKeys handles normal-mode key presses.
func (m viewModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		m.vw.Up()
	case "down", "j":
		m.vw.Down()
	case "left", "h":
		m.vw.Left()
	case "right", "l":
		m.vw.Right()
	case "enter":
		m.vw.ZoomTo(m.vw.Cursor())
	case "backspace":
		m.vw.Reset()
	case "esc", "home":
		m.vw.Home()
	case "f":
		// Orientation is a viewport property; no relayout or debounce.
		m.flipped = !m.flipped
	case "/":
		m.searching = true
		m.input = nil
	case "c":
		m.vw.ClearSearch()
	}
	return m, nil
}

// updateSearch handles key presses while the search prompt is open.
func (m viewModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.searching = false
	case tea.KeyEnter:
		m.searching = false
		term := strings.TrimSpace(string(m.input))
		if term == "" {
			m.vw.ClearSearch()
		} else {
			m.vw.Search(term)
		}
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return m, nil
}

// applyResize adopts the pending terminal size and rebuilds layout and view,
// carrying zoom, search, and cursor state over to the new geometry. The
// first call seeds that state from the command flags instead.
func (m viewModel) applyResize() viewModel {
	m.width, m.height = m.pendingWidth, m.pendingHeight
	if m.width < 1 {
		m.width = 1
	}

	focus := int32(-1)
	cursor := int32(-1)
	term := ""
	if m.vw != nil {
		if m.vw.Zoomed() {
			focus = m.vw.Focus()
		}
		term = m.vw.Term()
		cursor = m.vw.Cursor()
	} else {
		if m.params.focus != "" {
			if id, ok := m.tree.FindByName(m.params.focus); ok {
				focus = id
				cursor = id
			}
		}
		term = m.params.search
	}

	m.lay = layout.Build(m.tree, float64(m.width), 1)
	m.vw = view.New(m.tree, m.lay)

	if focus >= 0 {
		m.vw.ZoomTo(focus)
	}
	if term != "" {
		m.vw.Search(term)
	}
	if cursor >= 0 {
		m.vw.SetCursor(cursor)
	}
	return m
}

// =============================================================================
// Rendering
// =============================================================================

func (m viewModel) View() string {
	if m.lay == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.flameView())
	b.WriteString("\n")
	b.WriteString(m.footerView())
	return b.String()
}

// headerView renders the title row and the cursor readout row.
func (m viewModel) headerView() string {
	title := StyleTitle.Render(m.params.title)
	if m.vw.Zoomed() {
		if n, ok := m.tree.Node(m.vw.Focus()); ok {
			title += StyleDim.Render(" · zoom ") + StyleHighlight.Render(n.Name)
		}
	}

	info := ""
	if n, ok := m.tree.Node(m.vw.Cursor()); ok {
		share := 0.0
		if total := m.tree.Total(); total > 0 {
			share = n.Value / total * 100
		}
		info = StyleValue.Render(n.Name) +
			StyleDim.Render(" · ") + StyleNumber.Render(formatValue(n.Value)) +
			StyleDim.Render(fmt.Sprintf(" · %.1f%% of total · depth %d", share, n.Depth))
	}

	return m.clip(title) + "\n" + m.clip(info)
}

// flameView renders the band rows, bottom-anchored for flame orientation
// and top-anchored for icicle.
func (m viewModel) flameView() string {
	segs := m.flameSegs()
	rows := m.flameArea()
	blank := rows - len(segs)

	lines := make([]string, 0, rows)
	if !m.flipped {
		for i := 0; i < blank; i++ {
			lines = append(lines, "")
		}
	}
	for _, rs := range segs {
		lines = append(lines, m.renderRow(rs))
	}
	if m.flipped {
		for i := 0; i < blank; i++ {
			lines = append(lines, "")
		}
	}
	return strings.Join(lines, "\n")
}

// footerView renders the search status row and the key help row.
func (m viewModel) footerView() string {
	status := ""
	switch {
	case m.searching:
		status = StyleHighlight.Render("/") + StyleValue.Render(string(m.input)) + StyleHighlight.Render("▌")
	case m.vw.Term() != "":
		status = StyleWarning.Render(fmt.Sprintf("%d matches", m.vw.Matches())) +
			StyleDim.Render(fmt.Sprintf(" · %.1f%% of profile · c to clear", m.vw.MatchedShare()*100))
	}

	help := StyleDim.Render("←↓↑→ move · enter zoom · backspace out · esc root · f flip · / search · q quit")
	return m.clip(status) + "\n" + m.clip(help)
}

// renderRow paints one band row: styled block segments over plain gaps.
func (m viewModel) renderRow(segs []rowSeg) string {
	var b strings.Builder
	x := 0
	for _, s := range segs {
		if s.x0 > x {
			b.WriteString(strings.Repeat(" ", s.x0-x))
			x = s.x0
		}
		if s.x1 <= x {
			continue
		}
		st := lipgloss.NewStyle().
			Background(lipgloss.Color(s.color)).
			Foreground(lipgloss.Color("235"))
		if s.highlighted {
			st = st.Foreground(lipgloss.Color("255")).Bold(true)
		}
		if s.faded {
			st = st.Faint(true)
		}
		if s.cursor {
			st = st.Reverse(true).Bold(true)
		}
		b.WriteString(st.Render(cellLabel(s.name, s.x1-x)))
		x = s.x1
	}
	return b.String()
}

// flameArea returns the number of screen rows available for band rows.
func (m viewModel) flameArea() int {
	rows := m.height - headerRows - footerRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

// flameSegs builds the per-row draw segments for the current state. Index 0
// is the top row of the drawn bands; when the tree is deeper than the flame
// area the deepest bands are cut, keeping the root side visible.
func (m viewModel) flameSegs() [][]rowSeg {
	rows := m.flameArea()
	shown := m.lay.Bands
	if shown > rows {
		shown = rows
	}
	start := 0
	if !m.flipped && m.lay.Bands > rows {
		start = m.lay.Bands - rows
	}

	vp := layout.Viewport{Width: float64(m.width), Height: float64(m.lay.Bands), Flipped: m.flipped}
	blocks := flame.Frame(m.tree, m.lay, m.vw, vp,
		flame.WithStyle(m.params.style),
		flame.WithoutHidden())

	segs := make([][]rowSeg, shown)
	cursor := m.vw.Cursor()
	for _, blk := range blocks {
		row := int(math.Round(blk.Y)) - start
		if row < 0 || row >= shown {
			continue
		}
		x0 := int(math.Round(blk.X))
		x1 := int(math.Round(blk.X + blk.W))
		if x0 < 0 {
			x0 = 0
		}
		if x1 > m.width {
			x1 = m.width
		}
		if x1 <= x0 {
			continue
		}
		segs[row] = append(segs[row], rowSeg{
			id:          blk.ID,
			x0:          x0,
			x1:          x1,
			name:        blk.Name,
			color:       blk.Color,
			highlighted: blk.Highlighted,
			faded:       blk.Faded,
			cursor:      blk.ID == cursor,
		})
	}
	return segs
}

// blockAt maps a terminal cell to the frame drawn there.
func (m viewModel) blockAt(x, y int) (int32, bool) {
	if m.lay == nil {
		return 0, false
	}
	segs := m.flameSegs()
	topPad := 0
	if !m.flipped {
		topPad = m.flameArea() - len(segs)
	}
	row := y - headerRows - topPad
	if row < 0 || row >= len(segs) {
		return 0, false
	}
	for _, s := range segs[row] {
		if x >= s.x0 && x < s.x1 {
			return s.id, true
		}
	}
	return 0, false
}

// clip truncates a styled line to the terminal width.
func (m viewModel) clip(s string) string {
	return lipgloss.NewStyle().MaxWidth(m.width).Render(s)
}

// cellLabel fits name into w terminal cells with a leading space, padding
// the remainder so the block's background fills its full width.
func cellLabel(name string, w int) string {
	if w < 3 {
		return strings.Repeat(" ", w)
	}
	r := []rune(name)
	if max := w - 2; len(r) > max {
		r = append(r[:max-1], '…')
	}
	return " " + string(r) + strings.Repeat(" ", w-1-len(r))
}

// formatValue renders a frame value compactly (1234567 → "1.23M").
func formatValue(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2fG", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2fk", v/1e3)
	case v == math.Trunc(v):
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
