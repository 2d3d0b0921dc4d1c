// Package search locates nodes by name when the caller has no identifier,
// e.g. the jump-to-node picker. Identifier lookup lives in package tree;
// this is the fuzzy, human-facing side.
package search

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/arbor/internal/tree"
)

// Match pairs a node with its rank against the query. Lower Distance is a
// better match; exact and prefix matches rank ahead of everything else.
type Match struct {
	Node     *tree.Node
	Depth    int
	Distance int
}

// ByName ranks every node in the tree against query. Collapsed subtrees
// are searched like any other: hiding a node from layout does not hide it
// from lookup. An empty query returns all nodes in pre-order, undistanced.
func ByName(query string, nodes []*tree.Node) []Match {
	q := strings.ToLower(strings.TrimSpace(query))

	var matches []Match
	tree.Walk(nodes, func(n *tree.Node, depth int) bool {
		matches = append(matches, Match{Node: n, Depth: depth, Distance: rank(q, n.Name)})
		return true
	})
	if q == "" {
		return matches
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	return matches
}

// Best returns the single closest match, or nil when the tree is empty.
func Best(query string, nodes []*tree.Node) *Match {
	matches := ByName(query, nodes)
	if len(matches) == 0 {
		return nil
	}
	return &matches[0]
}

// rank scores a candidate name: 0 for exact, 1 for prefix, 2 for
// substring, then levenshtein distance offset past the bucketed scores so
// structural matches always win.
func rank(query, name string) int {
	n := strings.ToLower(name)
	switch {
	case query == "":
		return 0
	case n == query:
		return 0
	case strings.HasPrefix(n, query):
		return 1
	case strings.Contains(n, query):
		return 2
	default:
		return 3 + levenshtein.ComputeDistance(query, n)
	}
}
