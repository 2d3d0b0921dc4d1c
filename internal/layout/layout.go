// Package layout turns an augmented tree into drawable geometry: one
// positioned node per visitable tree node plus the parent-child links
// between them. A node's visitable children are its children unless it is
// collapsed, in which case it has none.
package layout

import (
	"math"

	"github.com/jask/arbor/internal/tree"
)

// Orientation selects which screen axis carries depth.
type Orientation string

const (
	// Horizontal grows the tree left to right: depth on X, siblings on Y.
	Horizontal Orientation = "horizontal"
	// Vertical grows the tree top to bottom: depth on Y, siblings on X.
	Vertical Orientation = "vertical"
)

// Separation controls spacing between adjacent siblings, in multiples of
// the breadth-axis node size. Nodes with children get the wider Subtree
// gap so their descendants have room.
type Separation struct {
	Leaf    float64
	Subtree float64
}

// Size is the fixed per-axis spacing between node centers.
type Size struct {
	Depth   float64
	Breadth float64
}

// Options configures an Engine. Zero values fall back to defaults.
type Options struct {
	Orientation Orientation
	NodeSize    Size
	Separation  Separation
	// DepthFactor scales depth-axis spacing; 0 keeps the native spacing.
	DepthFactor float64
	// InitialDepth collapses every node deeper than it before the first
	// geometry pass. Negative means unlimited (no initial collapse).
	InitialDepth int
}

// Defaults match the classic tree-chart proportions: siblings one breadth
// unit apart, a third wider when the node has a subtree under it.
func Defaults() Options {
	return Options{
		Orientation:  Horizontal,
		NodeSize:     Size{Depth: 180, Breadth: 40},
		Separation:   Separation{Leaf: 1.0, Subtree: 4.0 / 3.0},
		InitialDepth: -1,
	}
}

// PositionedNode is an augmented node with layout-assigned coordinates.
type PositionedNode struct {
	*tree.Node
	X     float64
	Y     float64
	Depth int
}

// Link connects a visitable non-root node to its parent.
type Link struct {
	Source *PositionedNode
	Target *PositionedNode
}

// Engine computes layouts. It remembers whether the initial-depth rule has
// run so the cutoff applies exactly once, on the first pass.
type Engine struct {
	opts        Options
	initialDone bool
}

// New returns an Engine for the given options, filling in defaults for
// unset fields.
func New(opts Options) *Engine {
	def := Defaults()
	if opts.Orientation == "" {
		opts.Orientation = def.Orientation
	}
	if opts.NodeSize.Depth == 0 {
		opts.NodeSize.Depth = def.NodeSize.Depth
	}
	if opts.NodeSize.Breadth == 0 {
		opts.NodeSize.Breadth = def.NodeSize.Breadth
	}
	if opts.Separation.Leaf == 0 {
		opts.Separation.Leaf = def.Separation.Leaf
	}
	if opts.Separation.Subtree == 0 {
		opts.Separation.Subtree = def.Separation.Subtree
	}
	return &Engine{opts: opts}
}

// SetOrientation changes which axis carries depth on subsequent layouts.
// The engine's one-time initial-depth state is untouched: flipping
// orientation is not a new data arrival.
func (e *Engine) SetOrientation(o Orientation) {
	e.opts.Orientation = o
}

// Layout computes positions and links for every visitable node under root.
// On the very first call only, if InitialDepth is set, nodes deeper than
// the cutoff are collapsed in place before geometry is computed.
func (e *Engine) Layout(root *tree.Node) ([]PositionedNode, []Link) {
	if root == nil {
		return nil, nil
	}
	if !e.initialDone {
		e.initialDone = true
		if e.opts.InitialDepth >= 0 {
			ApplyInitialDepth(root, e.opts.InitialDepth)
		}
	}

	depthSpacing := e.opts.NodeSize.Depth
	if e.opts.DepthFactor > 0 {
		depthSpacing = e.opts.NodeSize.Depth * e.opts.DepthFactor
	}

	w := &walker{
		breadthUnit: e.opts.NodeSize.Breadth,
		sep:         e.opts.Separation,
	}
	w.place(root, nil, 0)

	nodes := make([]PositionedNode, 0, len(w.placed))
	links := make([]Link, 0, len(w.placed))
	index := make(map[*tree.Node]*PositionedNode, len(w.placed))
	for _, p := range w.placed {
		depthCoord := float64(p.depth) * depthSpacing
		pn := PositionedNode{Node: p.node, Depth: p.depth}
		if e.opts.Orientation == Vertical {
			pn.X, pn.Y = p.breadth, depthCoord
		} else {
			pn.X, pn.Y = depthCoord, p.breadth
		}
		nodes = append(nodes, pn)
		index[p.node] = &nodes[len(nodes)-1]
	}
	for _, p := range w.placed {
		if p.parent == nil {
			continue
		}
		links = append(links, Link{Source: index[p.parent], Target: index[p.node]})
	}
	return nodes, links
}

type placement struct {
	node    *tree.Node
	parent  *tree.Node
	depth   int
	breadth float64
}

type walker struct {
	breadthUnit float64
	sep         Separation
	cursor      float64
	placed      []placement
}

// place assigns breadth coordinates bottom-up: leaves (and collapsed
// nodes, which contribute no visitable children) take the next free slot,
// parents sit centered over their children. Returns the node's breadth
// coordinate. The slot advance after a node is wider when the node has
// children so neighboring subtrees keep their distance.
func (w *walker) place(n, parent *tree.Node, depth int) float64 {
	idx := len(w.placed)
	w.placed = append(w.placed, placement{node: n, parent: parent, depth: depth})

	children := n.Children
	if n.Collapsed {
		children = nil
	}
	var breadth float64
	if len(children) == 0 {
		breadth = w.cursor
		w.cursor += w.breadthUnit * w.gapAfter(n)
	} else {
		first, last := math.Inf(1), math.Inf(-1)
		for _, ch := range children {
			b := w.place(ch, n, depth+1)
			if b < first {
				first = b
			}
			if b > last {
				last = b
			}
		}
		breadth = (first + last) / 2
	}
	w.placed[idx].breadth = breadth
	return breadth
}

func (w *walker) gapAfter(n *tree.Node) float64 {
	if len(n.Children) > 0 {
		return w.sep.Subtree
	}
	return w.sep.Leaf
}

// ApplyInitialDepth collapses, in place, every node strictly deeper than
// maxDepth. Collapsing hides a node's children, so the rendered tree stops
// unfolding past the cutoff while nodes at the cutoff stay visible.
func ApplyInitialDepth(root *tree.Node, maxDepth int) {
	tree.Walk([]*tree.Node{root}, func(n *tree.Node, depth int) bool {
		if depth > maxDepth {
			n.Collapsed = true
		}
		return true
	})
}

// Bounds reports the bounding box around a set of positioned nodes.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// BoundsOf computes the box containing every node; an empty set yields the
// zero box.
func BoundsOf(nodes []PositionedNode) Bounds {
	if len(nodes) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: nodes[0].X, MaxX: nodes[0].X, MinY: nodes[0].Y, MaxY: nodes[0].Y}
	for _, n := range nodes[1:] {
		b.MinX = math.Min(b.MinX, n.X)
		b.MaxX = math.Max(b.MaxX, n.X)
		b.MinY = math.Min(b.MinY, n.Y)
		b.MaxY = math.Max(b.MaxY, n.Y)
	}
	return b
}
