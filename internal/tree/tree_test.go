package tree

import (
	"strings"
	"testing"
)

// sampleRaw builds the canonical test tree:
//
//	A
//	├── B
//	└── C
//	    └── D
func sampleRaw() []RawNode {
	return []RawNode{{
		Name:       "A",
		Attributes: map[string]string{"dept": "exec"},
		Children: []RawNode{
			{Name: "B"},
			{Name: "C", Children: []RawNode{{Name: "D"}}},
		},
	}}
}

func byName(nodes []*Node, name string) *Node {
	var match *Node
	Walk(nodes, func(n *Node, _ int) bool {
		if n.Name == name {
			match = n
			return false
		}
		return true
	})
	return match
}

func TestAnnotatePreservesShapeAndPayload(t *testing.T) {
	raw := sampleRaw()
	nodes := Annotate(raw)

	if got := Count(nodes); got != 4 {
		t.Fatalf("node count = %d, want 4", got)
	}
	root := nodes[0]
	if root.Name != "A" || root.Attributes["dept"] != "exec" {
		t.Fatalf("root payload not preserved: %+v", root)
	}
	if len(root.Children) != 2 || root.Children[0].Name != "B" || root.Children[1].Name != "C" {
		t.Fatalf("child ordering not preserved")
	}
	Walk(nodes, func(n *Node, _ int) bool {
		if n.Collapsed {
			t.Fatalf("node %s starts collapsed", n.Name)
		}
		return true
	})
}

func TestAnnotateAssignsDistinctIDs(t *testing.T) {
	nodes := Annotate(sampleRaw())
	seen := map[string]string{}
	Walk(nodes, func(n *Node, _ int) bool {
		if n.ID == "" {
			t.Fatalf("node %s has empty id", n.Name)
		}
		if prev, ok := seen[n.ID]; ok {
			t.Fatalf("id collision between %s and %s", prev, n.Name)
		}
		seen[n.ID] = n.Name
		return true
	})
}

func TestAnnotateIsFreshPerPass(t *testing.T) {
	raw := sampleRaw()
	first := Annotate(raw)
	second := Annotate(raw)
	if first[0].ID == second[0].ID {
		t.Fatalf("re-annotation reused an identifier")
	}
	if first[0].Name != second[0].Name || Count(first) != Count(second) {
		t.Fatalf("re-annotation changed tree shape")
	}
}

func TestAnnotateDoesNotMutateInput(t *testing.T) {
	raw := sampleRaw()
	nodes := Annotate(raw)
	Collapse(nodes[0])
	nodes[0].Name = "mutated"
	if raw[0].Name != "A" {
		t.Fatalf("raw input mutated through annotation")
	}
}

func TestRootRequiresData(t *testing.T) {
	if _, err := Root(nil); err == nil {
		t.Fatalf("expected error for empty input")
	}
	nodes := Annotate(sampleRaw())
	root, err := Root(nodes)
	if err != nil || root.Name != "A" {
		t.Fatalf("root = %v, err = %v", root, err)
	}
}

func TestFindByID(t *testing.T) {
	nodes := Annotate(sampleRaw())
	d := byName(nodes, "D")

	found := FindByID(d.ID, nodes)
	if len(found) != 1 || found[0].Name != "D" {
		t.Fatalf("expected single match for D, got %v", found)
	}
	if got := FindByID("no-such-id", nodes); len(got) != 0 {
		t.Fatalf("expected empty result for unknown id, got %v", got)
	}
}

func TestFindByIDSearchesCollapsedSubtrees(t *testing.T) {
	nodes := Annotate(sampleRaw())
	c := byName(nodes, "C")
	d := byName(nodes, "D")
	Collapse(c)

	if got := FindByID(d.ID, nodes); len(got) != 1 {
		t.Fatalf("lookup must see through collapsed ancestors, got %v", got)
	}
}

func TestFindByIDStopsAtFirstMatch(t *testing.T) {
	// Two subtrees sharing a forged id; the match under the first sibling
	// must win and the second sibling must not be scanned.
	nodes := Annotate([]RawNode{{
		Name: "root",
		Children: []RawNode{
			{Name: "left", Children: []RawNode{{Name: "target"}}},
			{Name: "right", Children: []RawNode{{Name: "decoy"}}},
		},
	}})
	left := byName(nodes, "left")
	right := byName(nodes, "right")
	right.Children[0].ID = left.Children[0].ID

	found := FindByID(left.Children[0].ID, nodes)
	if len(found) != 1 || found[0].Name != "target" {
		t.Fatalf("expected first-match short circuit, got %v", found)
	}
}

func TestCollapseIsDeep(t *testing.T) {
	nodes := Annotate(sampleRaw())
	Collapse(nodes[0])
	Walk(nodes, func(n *Node, _ int) bool {
		if !n.Collapsed {
			t.Fatalf("node %s not collapsed", n.Name)
		}
		return true
	})
}

func TestExpandIsShallow(t *testing.T) {
	nodes := Annotate(sampleRaw())
	c := byName(nodes, "C")
	d := byName(nodes, "D")
	Collapse(c)

	Expand(c)
	if c.Collapsed {
		t.Fatalf("expand did not clear target")
	}
	if !d.Collapsed {
		t.Fatalf("expand must not recurse into descendants")
	}
}

func TestToggleReturnsNewTree(t *testing.T) {
	nodes := Annotate(sampleRaw())
	c := byName(nodes, "C")

	next := Toggle(c.ID, nodes)
	if c.Collapsed {
		t.Fatalf("toggle mutated the published tree")
	}
	nc := byName(next, "C")
	nd := byName(next, "D")
	if !nc.Collapsed || !nd.Collapsed {
		t.Fatalf("toggle should collapse C deep: C=%v D=%v", nc.Collapsed, nd.Collapsed)
	}
}

func TestToggleAsymmetry(t *testing.T) {
	nodes := Annotate(sampleRaw())
	c := byName(nodes, "C")

	once := Toggle(c.ID, nodes)
	twice := Toggle(c.ID, once)

	tc := byName(twice, "C")
	td := byName(twice, "D")
	if tc.Collapsed {
		t.Fatalf("double toggle should restore C to expanded")
	}
	if !td.Collapsed {
		t.Fatalf("descendant state must survive shallow expand")
	}
}

func TestToggleUnknownIDIsNoOp(t *testing.T) {
	nodes := Annotate(sampleRaw())
	next := Toggle("vanished", nodes)
	if Count(next) != Count(nodes) {
		t.Fatalf("no-op toggle changed tree size")
	}
	Walk(next, func(n *Node, _ int) bool {
		if n.Collapsed {
			t.Fatalf("no-op toggle collapsed %s", n.Name)
		}
		return true
	})
}

func TestCloneIsIndependent(t *testing.T) {
	nodes := Annotate(sampleRaw())
	cp := Clone(nodes)
	Collapse(cp[0])
	if nodes[0].Collapsed {
		t.Fatalf("clone shares state with original")
	}
	if cp[0].ID != nodes[0].ID {
		t.Fatalf("clone must preserve identifiers")
	}
}

func TestWalkDepths(t *testing.T) {
	nodes := Annotate(sampleRaw())
	depths := map[string]int{}
	Walk(nodes, func(n *Node, depth int) bool {
		depths[n.Name] = depth
		return true
	})
	want := map[string]int{"A": 0, "B": 1, "C": 1, "D": 2}
	for name, d := range want {
		if depths[name] != d {
			t.Fatalf("depth of %s = %d, want %d", name, depths[name], d)
		}
	}
}

func TestDecodeJSONSingleRootAndSequence(t *testing.T) {
	single := `{"name":"A","children":[{"name":"B"}]}`
	nodes, err := Decode(strings.NewReader(single), "json")
	if err != nil {
		t.Fatalf("decode single: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Name != "A" || len(nodes[0].Children) != 1 {
		t.Fatalf("unexpected decode result: %+v", nodes)
	}

	seq := `[{"name":"A"},{"name":"ignored"}]`
	nodes, err = Decode(strings.NewReader(seq), "json")
	if err != nil {
		t.Fatalf("decode sequence: %v", err)
	}
	if len(nodes) != 2 || nodes[0].Name != "A" {
		t.Fatalf("unexpected sequence result: %+v", nodes)
	}
}

func TestDecodeYAML(t *testing.T) {
	doc := "name: A\nattributes:\n  dept: exec\nchildren:\n  - name: B\n"
	nodes, err := Decode(strings.NewReader(doc), "yaml")
	if err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if len(nodes) != 1 || nodes[0].Name != "A" || nodes[0].Attributes["dept"] != "exec" {
		t.Fatalf("unexpected yaml result: %+v", nodes)
	}
}

func TestDecodeRejectsUnknownFormat(t *testing.T) {
	if _, err := Decode(strings.NewReader("{}"), "toml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
