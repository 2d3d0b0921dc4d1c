// Package export serializes a computed layout for external drawing
// layers: a d3-compatible JSON payload for browser rendering and a
// standalone SVG document.
package export

import (
	"encoding/json"
	"io"

	"github.com/jask/arbor/internal/layout"
)

// PathFunc names the link-path shape the drawing layer should use.
type PathFunc string

const (
	// Diagonal draws links as cubic bezier curves, d3-link style.
	Diagonal PathFunc = "diagonal"
	// Elbow draws links as right-angle segments.
	Elbow PathFunc = "elbow"
)

// D3Node is one positioned node in the payload.
type D3Node struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
	X          float64           `json:"x"`
	Y          float64           `json:"y"`
	Depth      int               `json:"depth"`
	Collapsed  bool              `json:"collapsed,omitempty"`
	HasHidden  bool              `json:"hasHiddenChildren,omitempty"`
}

// D3Link references its endpoints by node id.
type D3Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// D3Payload is the whole drawable scene. PathFunc and Transform are hints
// for the drawing layer; the geometry is already laid out.
type D3Payload struct {
	Nodes     []D3Node `json:"nodes"`
	Links     []D3Link `json:"links"`
	PathFunc  PathFunc `json:"pathFunc"`
	Transform string   `json:"transform,omitempty"`
}

// BuildD3 assembles the payload from a layout result.
func BuildD3(nodes []layout.PositionedNode, links []layout.Link, pathFunc PathFunc, transform string) D3Payload {
	p := D3Payload{
		Nodes:     make([]D3Node, 0, len(nodes)),
		Links:     make([]D3Link, 0, len(links)),
		PathFunc:  pathFunc,
		Transform: transform,
	}
	for _, n := range nodes {
		p.Nodes = append(p.Nodes, D3Node{
			ID:         n.ID,
			Name:       n.Name,
			Attributes: n.Attributes,
			X:          n.X,
			Y:          n.Y,
			Depth:      n.Depth,
			Collapsed:  n.Collapsed,
			HasHidden:  n.Collapsed && len(n.Node.Children) > 0,
		})
	}
	for _, l := range links {
		p.Links = append(p.Links, D3Link{Source: l.Source.ID, Target: l.Target.ID})
	}
	return p
}

// WriteD3 writes the payload as indented JSON.
func WriteD3(w io.Writer, payload D3Payload) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
