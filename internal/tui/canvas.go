package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/arbor/internal/layout"
	"github.com/jask/arbor/internal/viewport"
)

// World units per terminal cell. Terminal cells are roughly twice as tall
// as wide, so the vertical divisor is larger to keep proportions.
const (
	worldPerCellX = 12.0
	worldPerCellY = 20.0
)

// span is a styled label spliced over the rune grid at render time.
type span struct {
	row, col int
	text     string
	style    lipgloss.Style
}

// canvas is the cell grid the diagram is painted onto: links as box-drawing
// runes in the grid, node labels as styled spans on top.
type canvas struct {
	w, h  int
	cells [][]rune
	spans []span
}

func newCanvas(w, h int) *canvas {
	cells := make([][]rune, h)
	for i := range cells {
		row := make([]rune, w)
		for j := range row {
			row[j] = ' '
		}
		cells[i] = row
	}
	return &canvas{w: w, h: h, cells: cells}
}

func (c *canvas) set(row, col int, r rune) {
	if row < 0 || row >= c.h || col < 0 || col >= c.w {
		return
	}
	c.cells[row][col] = r
}

func (c *canvas) label(row, col int, text string, style lipgloss.Style) {
	if row < 0 || row >= c.h || col >= c.w {
		return
	}
	c.spans = append(c.spans, span{row: row, col: col, text: text, style: style})
}

// drawScene projects the layout through the viewport onto the grid.
func (c *canvas) drawScene(nodes []layout.PositionedNode, links []layout.Link, vp *viewport.Viewport, cursorID string) {
	for _, l := range links {
		sr, sc := c.cell(vp, l.Source.X, l.Source.Y)
		tr, tc := c.cell(vp, l.Target.X, l.Target.Y)
		c.drawElbow(sr, sc, tr, tc)
	}
	for i := range nodes {
		n := &nodes[i]
		r, cl := c.cell(vp, n.X, n.Y)
		glyph := "• "
		style := nodeStyle
		switch {
		case n.Collapsed && len(n.Node.Children) > 0:
			glyph = "▸ "
			style = nodeHiddenStyle
		case len(n.Node.Children) > 0:
			glyph = "▾ "
		}
		if n.ID == cursorID {
			style = cursorNodeStyle
		}
		c.label(r, cl, glyph+n.Name, style)
	}
}

func (c *canvas) cell(vp *viewport.Viewport, x, y float64) (row, col int) {
	px, py := vp.Project(x, y)
	return int(py / worldPerCellY), int(px / worldPerCellX)
}

// drawElbow paints a link as a vertical run at the source column followed
// by a horizontal run into the target, with a corner where they meet.
func (c *canvas) drawElbow(sr, sc, tr, tc int) {
	lo, hi := sr, tr
	if lo > hi {
		lo, hi = hi, lo
	}
	for r := lo + 1; r < hi; r++ {
		c.set(r, sc, '│')
	}
	for col := sc + 1; col < tc; col++ {
		c.set(tr, col, '─')
	}
	switch {
	case sr == tr:
		c.set(tr, sc, '─')
	case tr > sr:
		c.set(tr, sc, '└')
	default:
		c.set(tr, sc, '┌')
	}
}

// render assembles the grid into styled lines, splicing labels over the
// link runes. Overlapping labels keep the first-drawn one.
func (c *canvas) render() string {
	lines := make([]string, 0, c.h)
	for row := 0; row < c.h; row++ {
		var spans []span
		for _, s := range c.spans {
			if s.row == row && s.col < c.w {
				spans = append(spans, s)
			}
		}
		sortSpans(spans)

		var sb strings.Builder
		cur := 0
		for _, s := range spans {
			start := s.col
			if start < cur {
				continue
			}
			if start > cur {
				sb.WriteString(linkStyle.Render(string(c.cells[row][cur:start])))
			}
			text := []rune(s.text)
			if start+len(text) > c.w {
				text = text[:c.w-start]
			}
			sb.WriteString(s.style.Render(string(text)))
			cur = start + len(text)
		}
		if cur < c.w {
			sb.WriteString(linkStyle.Render(string(c.cells[row][cur:])))
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

func sortSpans(spans []span) {
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j].col < spans[j-1].col; j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}
}
