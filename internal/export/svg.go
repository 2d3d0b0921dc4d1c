package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jask/arbor/internal/layout"
)

// SVGOptions controls the emitted document. Zero padding gets a sensible
// default; an empty PathFunc falls back to Diagonal.
type SVGOptions struct {
	PathFunc   PathFunc
	Transform  string
	Padding    float64
	NodeRadius float64
}

const (
	defaultSVGPadding = 40.0
	defaultNodeRadius = 6.0
)

// WriteSVG renders the layout as a standalone SVG document: one circle and
// label per positioned node, one path per link. When a viewport transform
// is supplied the scene is wrapped in a <g transform="..."> group so the
// output matches what the interactive view showed.
func WriteSVG(w io.Writer, nodes []layout.PositionedNode, links []layout.Link, opts SVGOptions) error {
	if opts.Padding == 0 {
		opts.Padding = defaultSVGPadding
	}
	if opts.NodeRadius == 0 {
		opts.NodeRadius = defaultNodeRadius
	}
	if opts.PathFunc == "" {
		opts.PathFunc = Diagonal
	}

	b := layout.BoundsOf(nodes)
	width := b.MaxX - b.MinX + 2*opts.Padding
	height := b.MaxY - b.MinY + 2*opts.Padding
	// Shift so the top-left node lands at the padding edge.
	dx, dy := opts.Padding-b.MinX, opts.Padding-b.MinY

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		width, height, width, height)
	if opts.Transform != "" {
		fmt.Fprintf(&sb, `  <g transform="%s">`+"\n", escapeXML(opts.Transform))
	}

	for _, l := range links {
		sx, sy := l.Source.X+dx, l.Source.Y+dy
		tx, ty := l.Target.X+dx, l.Target.Y+dy
		fmt.Fprintf(&sb, `  <path class="link" fill="none" stroke="#555" d="%s"/>`+"\n",
			linkPath(opts.PathFunc, sx, sy, tx, ty))
	}
	for _, n := range nodes {
		x, y := n.X+dx, n.Y+dy
		fill := "#fff"
		if n.Collapsed && len(n.Node.Children) > 0 {
			fill = "#bbb"
		}
		fmt.Fprintf(&sb, `  <circle class="node" cx="%g" cy="%g" r="%g" fill="%s" stroke="#555"/>`+"\n",
			x, y, opts.NodeRadius, fill)
		fmt.Fprintf(&sb, `  <text x="%g" y="%g" font-size="12">%s</text>`+"\n",
			x+opts.NodeRadius+4, y+4, escapeXML(n.Name))
	}

	if opts.Transform != "" {
		sb.WriteString("  </g>\n")
	}
	sb.WriteString("</svg>\n")

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// linkPath builds the d attribute for one link. Diagonal is the d3-style
// cubic bezier with control points at the depth midline; elbow runs
// breadth-first then depth as two straight segments.
func linkPath(pf PathFunc, sx, sy, tx, ty float64) string {
	if pf == Elbow {
		return fmt.Sprintf("M%g,%g L%g,%g L%g,%g", sx, sy, sx, ty, tx, ty)
	}
	mx := (sx + tx) / 2
	return fmt.Sprintf("M%g,%g C%g,%g %g,%g %g,%g", sx, sy, mx, sy, mx, ty, tx, ty)
}

func escapeXML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}
