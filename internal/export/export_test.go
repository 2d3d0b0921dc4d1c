package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jask/arbor/internal/layout"
	"github.com/jask/arbor/internal/tree"
)

func laidOut(t *testing.T) ([]layout.PositionedNode, []layout.Link) {
	t.Helper()
	nodes := tree.Annotate([]tree.RawNode{{
		Name: "A",
		Children: []tree.RawNode{
			{Name: "B"},
			{Name: "C", Children: []tree.RawNode{{Name: "D"}}},
		},
	}})
	return layout.New(layout.Defaults()).Layout(nodes[0])
}

func TestBuildD3CoversScene(t *testing.T) {
	nodes, links := laidOut(t)
	p := BuildD3(nodes, links, Diagonal, "translate(0,0) scale(1)")

	if len(p.Nodes) != len(nodes) || len(p.Links) != len(links) {
		t.Fatalf("payload size mismatch: %d/%d nodes, %d/%d links",
			len(p.Nodes), len(nodes), len(p.Links), len(links))
	}
	ids := map[string]bool{}
	for _, n := range p.Nodes {
		ids[n.ID] = true
	}
	for _, l := range p.Links {
		if !ids[l.Source] || !ids[l.Target] {
			t.Fatalf("link references unknown node: %+v", l)
		}
	}
	if p.PathFunc != Diagonal {
		t.Fatalf("pathFunc hint lost: %q", p.PathFunc)
	}
}

func TestWriteD3RoundTrips(t *testing.T) {
	nodes, links := laidOut(t)
	var buf bytes.Buffer
	if err := WriteD3(&buf, BuildD3(nodes, links, Elbow, "")); err != nil {
		t.Fatalf("write: %v", err)
	}
	var decoded D3Payload
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("payload is not valid json: %v", err)
	}
	if decoded.PathFunc != Elbow || len(decoded.Nodes) != 4 {
		t.Fatalf("decoded payload wrong: %+v", decoded)
	}
}

func TestWriteSVGOneElementPerNodeAndLink(t *testing.T) {
	nodes, links := laidOut(t)
	var buf bytes.Buffer
	if err := WriteSVG(&buf, nodes, links, SVGOptions{}); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	out := buf.String()

	if got := strings.Count(out, `<circle`); got != len(nodes) {
		t.Fatalf("%d circles, want %d", got, len(nodes))
	}
	if got := strings.Count(out, `<path`); got != len(links) {
		t.Fatalf("%d paths, want %d", got, len(links))
	}
	for _, name := range []string{"A", "B", "C", "D"} {
		if !strings.Contains(out, ">"+name+"</text>") {
			t.Fatalf("label %s missing from svg", name)
		}
	}
	// Default diagonal links are cubic beziers.
	if !strings.Contains(out, " C") {
		t.Fatalf("expected bezier path commands in diagonal mode")
	}
}

func TestWriteSVGElbowAndTransform(t *testing.T) {
	nodes, links := laidOut(t)
	var buf bytes.Buffer
	opts := SVGOptions{PathFunc: Elbow, Transform: "translate(10,20) scale(0.5)"}
	if err := WriteSVG(&buf, nodes, links, opts); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, " C") {
		t.Fatalf("elbow mode must not emit beziers")
	}
	if !strings.Contains(out, `transform="translate(10,20) scale(0.5)"`) {
		t.Fatalf("viewport transform missing from svg")
	}
}

func TestWriteSVGEscapesLabels(t *testing.T) {
	nodes := tree.Annotate([]tree.RawNode{{Name: "R&D <lab>"}})
	pos, links := layout.New(layout.Defaults()).Layout(nodes[0])
	var buf bytes.Buffer
	if err := WriteSVG(&buf, pos, links, SVGOptions{}); err != nil {
		t.Fatalf("write svg: %v", err)
	}
	if !strings.Contains(buf.String(), "R&amp;D &lt;lab&gt;") {
		t.Fatalf("label not escaped: %s", buf.String())
	}
}

func TestBuildD3MarksHiddenChildren(t *testing.T) {
	raw := []tree.RawNode{{
		Name:     "A",
		Children: []tree.RawNode{{Name: "B", Children: []tree.RawNode{{Name: "C"}}}},
	}}
	nodes := tree.Annotate(raw)
	tree.Collapse(nodes[0].Children[0])
	pos, links := layout.New(layout.Defaults()).Layout(nodes[0])

	p := BuildD3(pos, links, Diagonal, "")
	var b *D3Node
	for i := range p.Nodes {
		if p.Nodes[i].Name == "B" {
			b = &p.Nodes[i]
		}
	}
	if b == nil || !b.HasHidden || !b.Collapsed {
		t.Fatalf("collapsed parent should advertise hidden children: %+v", b)
	}
}
