// Package tui is the interactive drawing layer: a bubbletea program that
// renders the laid-out tree on a pannable, zoomable canvas and translates
// key presses into the node-activation and zoom events the core consumes.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/arbor/internal/config"
	"github.com/jask/arbor/internal/export"
	"github.com/jask/arbor/internal/layout"
	"github.com/jask/arbor/internal/search"
	"github.com/jask/arbor/internal/tree"
	"github.com/jask/arbor/internal/viewport"
)

// ---------------------------------------------------------------------------
// Messages
// ---------------------------------------------------------------------------

// toggleMsg is the node-activation event: it carries only the node's
// identifier and is interpreted against whatever tree is current when it
// arrives. A stale identifier is a silent no-op.
type toggleMsg struct{ id string }

// zoomMsg is the zoom-gesture event carrying the gesture's reported scale.
type zoomMsg struct{ scale float64 }

type statusMsg string

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// ---------------------------------------------------------------------------
// Jump-picker item (implements list.Item)
// ---------------------------------------------------------------------------

type nodeItem struct {
	id    string
	name  string
	depth int
}

func (i nodeItem) Title() string       { return i.name }
func (i nodeItem) Description() string { return "" }
func (i nodeItem) FilterValue() string { return i.name }

type nodeItemDelegate struct{}

func (d nodeItemDelegate) Height() int  { return 1 }
func (d nodeItemDelegate) Spacing() int { return 0 }
func (d nodeItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}
func (d nodeItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(nodeItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = keyStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%s%s", prefix, strings.Repeat("  ", entry.depth), entry.name)
}

// ---------------------------------------------------------------------------
// App
// ---------------------------------------------------------------------------

// App owns the single authoritative tree state. Every update either
// replaces the tree wholesale (toggle, reload) or touches only viewport
// state; the previous tree value is never mutated across a publish.
type App struct {
	cfg    config.Config
	source string
	raw    []tree.RawNode

	nodes  []*tree.Node
	engine *layout.Engine
	vp     *viewport.Viewport

	positioned []layout.PositionedNode
	links      []layout.Link

	cursor int
	status string
	width  int
	height int
	keys   keyMap

	picker     list.Model
	pickerOpen bool
	query      string
}

// New builds the app around raw tree data. An empty input is rejected here,
// at the boundary: the layout has no sane default for a missing root.
func New(cfg config.Config, source string, raw []tree.RawNode) (*App, error) {
	nodes := tree.Annotate(raw)
	if _, err := tree.Root(nodes); err != nil {
		return nil, err
	}

	picker := list.New(nil, nodeItemDelegate{}, 40, 12)
	picker.Title = "Jump to node"
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(false)
	picker.SetShowHelp(false)

	a := &App{
		cfg:    cfg,
		source: source,
		raw:    raw,
		nodes:  nodes,
		engine: layout.New(engineOptions(cfg)),
		vp: viewport.New(cfg.Viewport.TranslateX, cfg.Viewport.TranslateY,
			cfg.Viewport.ScaleMin, cfg.Viewport.ScaleMax),
		keys:   newKeyMap(),
		picker: picker,
		width:  80,
		height: 24,
	}
	a.relayout()
	return a, nil
}

func engineOptions(cfg config.Config) layout.Options {
	opts := layout.Defaults()
	if cfg.Tree.Orientation == string(layout.Vertical) {
		opts.Orientation = layout.Vertical
	}
	opts.DepthFactor = cfg.Tree.DepthFactor
	opts.InitialDepth = cfg.Tree.InitialDepth
	return opts
}

func (a *App) Init() tea.Cmd {
	return nil
}

// relayout recomputes geometry from the current tree, keeping the cursor
// on the same node when it is still visitable.
func (a *App) relayout() {
	var cursorID string
	if a.cursor < len(a.positioned) {
		cursorID = a.positioned[a.cursor].ID
	}
	root, err := tree.Root(a.nodes)
	if err != nil {
		a.positioned, a.links = nil, nil
		return
	}
	a.positioned, a.links = a.engine.Layout(root)

	a.cursor = 0
	for i := range a.positioned {
		if a.positioned[i].ID == cursorID {
			a.cursor = i
			break
		}
	}
}

func (a *App) cursorNode() *layout.PositionedNode {
	if a.cursor < 0 || a.cursor >= len(a.positioned) {
		return nil
	}
	return &a.positioned[a.cursor]
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.picker.SetSize(min(60, m.Width-4), min(14, m.Height-4))

	case tea.KeyMsg:
		if a.pickerOpen {
			return a.handlePickerKey(m)
		}
		return a.handleKey(m)

	case toggleMsg:
		// Suppressed entirely when collapsing is administratively off.
		if !a.cfg.Tree.Collapsible {
			return a, nil
		}
		a.nodes = tree.Toggle(m.id, a.nodes)
		a.relayout()

	case zoomMsg:
		if !a.cfg.Viewport.Zoomable {
			return a, nil
		}
		a.vp.Zoom(m.scale)

	case statusMsg:
		a.status = string(m)

	case errMsg:
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.keys
	switch {
	case key.Matches(m, k.Quit):
		return a, tea.Quit

	case key.Matches(m, k.Up):
		if a.cursor > 0 {
			a.cursor--
		}
	case key.Matches(m, k.Down):
		if a.cursor < len(a.positioned)-1 {
			a.cursor++
		}

	case key.Matches(m, k.Toggle):
		if n := a.cursorNode(); n != nil {
			id := n.ID
			return a, func() tea.Msg { return toggleMsg{id: id} }
		}

	case key.Matches(m, k.ZoomIn):
		scale := a.vp.Scale * 1.25
		return a, func() tea.Msg { return zoomMsg{scale: scale} }
	case key.Matches(m, k.ZoomOut):
		scale := a.vp.Scale * 0.8
		return a, func() tea.Msg { return zoomMsg{scale: scale} }

	case key.Matches(m, k.PanLeft):
		a.vp.Pan(worldPerCellX*2, 0)
	case key.Matches(m, k.PanRight):
		a.vp.Pan(-worldPerCellX*2, 0)
	case key.Matches(m, k.PanUp):
		a.vp.Pan(0, worldPerCellY)
	case key.Matches(m, k.PanDown):
		a.vp.Pan(0, -worldPerCellY)

	case key.Matches(m, k.Reset):
		a.vp = viewport.New(a.cfg.Viewport.TranslateX, a.cfg.Viewport.TranslateY,
			a.cfg.Viewport.ScaleMin, a.cfg.Viewport.ScaleMax)

	case key.Matches(m, k.Jump):
		a.pickerOpen = true
		a.query = ""
		a.refreshPicker()

	case key.Matches(m, k.Orient):
		if a.cfg.Tree.Orientation == string(layout.Vertical) {
			a.cfg.Tree.Orientation = string(layout.Horizontal)
		} else {
			a.cfg.Tree.Orientation = string(layout.Vertical)
		}
		a.engine.SetOrientation(layout.Orientation(a.cfg.Tree.Orientation))
		a.relayout()

	case key.Matches(m, k.SVG):
		return a, a.exportSVGCmd()
	case key.Matches(m, k.JSON):
		return a, a.exportJSONCmd()

	case key.Matches(m, k.Reload):
		a.reload()

	case key.Matches(m, k.Save):
		if err := config.Save(a.cfg); err != nil {
			a.status = "error: " + err.Error()
		} else {
			a.status = "config saved"
		}
	}
	return a, nil
}

// reload re-annotates from the raw data: fresh identifiers, collapse state
// discarded, and a fresh engine so an initial-depth cutoff applies again.
// This is the "new raw data reference" lifecycle from the state model.
func (a *App) reload() {
	a.nodes = tree.Annotate(a.raw)
	a.engine = layout.New(engineOptions(a.cfg))
	a.cursor = 0
	a.relayout()
	a.status = "reloaded"
}

// ---------------------------------------------------------------------------
// Jump picker
// ---------------------------------------------------------------------------

func (a *App) handlePickerKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.Type {
	case tea.KeyEsc:
		a.pickerOpen = false
		return a, nil
	case tea.KeyEnter:
		if item, ok := a.picker.SelectedItem().(nodeItem); ok {
			a.jumpTo(item.id)
		}
		a.pickerOpen = false
		return a, nil
	case tea.KeyBackspace, tea.KeyCtrlH:
		if len(a.query) > 0 {
			a.query = a.query[:len(a.query)-1]
			a.refreshPicker()
		}
		return a, nil
	case tea.KeyRunes, tea.KeySpace:
		if m.Type == tea.KeySpace {
			a.query += " "
		} else {
			a.query += string(m.Runes)
		}
		a.refreshPicker()
		return a, nil
	}
	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(m)
	return a, cmd
}

func (a *App) refreshPicker() {
	matches := search.ByName(a.query, a.nodes)
	items := make([]list.Item, 0, len(matches))
	for _, m := range matches {
		items = append(items, nodeItem{id: m.Node.ID, name: m.Node.Name, depth: m.Depth})
	}
	a.picker.SetItems(items)
	a.picker.ResetSelected()
}

// jumpTo moves the cursor to the node with the given id, shallow-expanding
// its collapsed ancestors so it becomes visitable. The target's own
// collapse state is left alone.
func (a *App) jumpTo(id string) {
	path := ancestorPath(id, a.nodes)
	if path == nil {
		return
	}
	for _, anc := range path[:len(path)-1] {
		if anc.Collapsed {
			tree.Expand(anc)
		}
	}
	a.relayout()
	for i := range a.positioned {
		if a.positioned[i].ID == id {
			a.cursor = i
			break
		}
	}
}

// ancestorPath returns root..target for the node with the given id, or nil
// when the id is absent.
func ancestorPath(id string, nodes []*tree.Node) []*tree.Node {
	for _, n := range nodes {
		if n.ID == id {
			return []*tree.Node{n}
		}
		if sub := ancestorPath(id, n.Children); sub != nil {
			return append([]*tree.Node{n}, sub...)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Export commands
// ---------------------------------------------------------------------------

func exportBase(source string) string {
	if i := strings.LastIndex(source, "."); i > 0 {
		return source[:i]
	}
	return source
}

func (a *App) exportSVGCmd() tea.Cmd {
	nodes, links := a.positioned, a.links
	opts := export.SVGOptions{
		PathFunc:  export.PathFunc(a.cfg.Tree.PathFunc),
		Transform: a.vp.Transform(),
	}
	path := exportBase(a.source) + ".svg"
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return errMsg{fmt.Errorf("create %s: %w", path, err)}
		}
		defer f.Close()
		if err := export.WriteSVG(f, nodes, links, opts); err != nil {
			return errMsg{err}
		}
		return statusMsg("wrote " + path)
	}
}

func (a *App) exportJSONCmd() tea.Cmd {
	payload := export.BuildD3(a.positioned, a.links,
		export.PathFunc(a.cfg.Tree.PathFunc), a.vp.Transform())
	path := exportBase(a.source) + ".d3.json"
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return errMsg{fmt.Errorf("create %s: %w", path, err)}
		}
		defer f.Close()
		if err := export.WriteD3(f, payload); err != nil {
			return errMsg{err}
		}
		return statusMsg("wrote " + path)
	}
}
