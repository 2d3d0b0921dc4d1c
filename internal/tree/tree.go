package tree

import (
	"fmt"

	"github.com/google/uuid"
)

// RawNode is the caller-supplied hierarchical payload. Children is optional;
// its absence makes the node a leaf.
type RawNode struct {
	Name       string            `json:"name" yaml:"name"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Children   []RawNode         `json:"children,omitempty" yaml:"children,omitempty"`
}

// Node is a RawNode augmented with the internal state the diagram needs:
// a process-unique identifier and a collapse flag. Traversal rule: a
// collapsed node keeps its Children but the layout does not descend into
// them.
type Node struct {
	ID         string
	Name       string
	Attributes map[string]string
	Children   []*Node
	Collapsed  bool
}

// IsLeaf reports whether the node currently has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Annotate deep-copies raw into augmented nodes, assigning every node a
// fresh identifier and Collapsed=false. The input is never mutated.
// Identifiers are unique per annotation pass; re-annotating the same data
// yields a structurally equal tree with different identifiers.
func Annotate(raw []RawNode) []*Node {
	out := make([]*Node, 0, len(raw))
	for i := range raw {
		out = append(out, annotateOne(&raw[i]))
	}
	return out
}

func annotateOne(r *RawNode) *Node {
	n := &Node{
		ID:   uuid.NewString(),
		Name: r.Name,
	}
	if len(r.Attributes) > 0 {
		n.Attributes = make(map[string]string, len(r.Attributes))
		for k, v := range r.Attributes {
			n.Attributes[k] = v
		}
	}
	for i := range r.Children {
		n.Children = append(n.Children, annotateOne(&r.Children[i]))
	}
	return n
}

// Root returns the drawing root. The input contract is a sequence with
// exactly one root; extra roots are ignored. An empty sequence is a
// boundary error since the layout has no sane default for it.
func Root(nodes []*Node) (*Node, error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("tree: no root node in input data")
	}
	return nodes[0], nil
}

// Clone deep-copies an augmented tree, preserving identifiers and collapse
// state. Used so a toggle can mutate a private copy and publish it whole.
func Clone(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, cloneOne(n))
	}
	return out
}

func cloneOne(n *Node) *Node {
	c := &Node{
		ID:        n.ID,
		Name:      n.Name,
		Collapsed: n.Collapsed,
	}
	if len(n.Attributes) > 0 {
		c.Attributes = make(map[string]string, len(n.Attributes))
		for k, v := range n.Attributes {
			c.Attributes[k] = v
		}
	}
	for _, ch := range n.Children {
		c.Children = append(c.Children, cloneOne(ch))
	}
	return c
}

// FindByID searches nodes for the given identifier. The current level is
// checked first and the search returns immediately on a match; otherwise
// each node's children are searched in order and the first non-empty
// result wins, so siblings after a match are never scanned. The search
// descends through collapsed subtrees: collapse hides nodes from layout,
// not from lookup. A miss returns an empty slice, which callers treat as
// "not found", never as fatal.
func FindByID(id string, nodes []*Node) []*Node {
	var matches []*Node
	for _, n := range nodes {
		if n.ID == id {
			matches = append(matches, n)
		}
	}
	if len(matches) > 0 {
		return matches
	}
	for _, n := range nodes {
		if found := FindByID(id, n.Children); len(found) > 0 {
			return found
		}
	}
	return nil
}

// Collapse hides a whole subtree in one call: the target and every
// descendant get Collapsed=true. Iterative pre-order so pathologically
// deep trees cannot exhaust the stack.
func Collapse(n *Node) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur.Collapsed = true
		for i := len(cur.Children) - 1; i >= 0; i-- {
			stack = append(stack, cur.Children[i])
		}
	}
}

// Expand clears Collapsed on exactly the target node. Descendants keep
// their own state, so a previously collapsed grandchild stays hidden when
// its parent is expanded. That asymmetry with Collapse is intentional.
func Expand(n *Node) {
	n.Collapsed = false
}

// Toggle clones the tree, locates id in the clone and flips that node:
// collapsed nodes are expanded, expanded nodes are collapsed deep. The
// clone is returned as the new authoritative tree; the input is left
// untouched so the previous render's data stays valid. An unknown id is a
// silent no-op because UI events may race a data refresh.
func Toggle(id string, nodes []*Node) []*Node {
	next := Clone(nodes)
	found := FindByID(id, next)
	if len(found) == 0 {
		return next
	}
	target := found[0]
	if target.Collapsed {
		Expand(target)
	} else {
		Collapse(target)
	}
	return next
}

// Walk visits every node in pre-order, collapsed or not. The visitor
// receives the node and its depth; returning false stops the walk.
func Walk(nodes []*Node, visit func(n *Node, depth int) bool) {
	var rec func(n *Node, depth int) bool
	rec = func(n *Node, depth int) bool {
		if !visit(n, depth) {
			return false
		}
		for _, ch := range n.Children {
			if !rec(ch, depth+1) {
				return false
			}
		}
		return true
	}
	for _, n := range nodes {
		if !rec(n, 0) {
			return
		}
	}
}

// Count returns the total number of nodes, collapsed included.
func Count(nodes []*Node) int {
	total := 0
	Walk(nodes, func(*Node, int) bool { total++; return true })
	return total
}
