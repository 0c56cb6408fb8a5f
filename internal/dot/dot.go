// Package dot renders a Graphviz DOT skeleton of an SCFG's concealed
// region view: one node per top-level block, region members collapsed
// into their owning RegionBlock. It is not a full renderer (no layout
// hints, no payload contents) — just enough to eyeball a restructuring
// pass's shape.
package dot

import (
	"fmt"
	"sort"
	"strings"

	"scfg"
)

// Render walks g.ConcealedRegionView and returns a DOT "digraph" source
// string: one node per visible block, labeled with its kind, and one edge
// per jump target.
func Render(g *scfg.SCFG) string {
	var b strings.Builder
	b.WriteString("digraph scfg {\n")

	type edge struct{ from, to string }
	nodes := map[string]scfg.BlockKind{}
	var edges []edge

	for name, block := range g.ConcealedRegionView() {
		nodes[name] = block.Kind
		for _, target := range block.JumpTargets() {
			edges = append(edges, edge{from: name, to: target})
		}
	}

	names := make([]string, 0, len(nodes))
	for n := range nodes {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		shape := "box"
		if nodes[n] == scfg.BlockRegion {
			shape = "box3d"
		}
		fmt.Fprintf(&b, "  %q [label=%q shape=%s];\n", n, fmt.Sprintf("%s\n%s", n, nodes[n]), shape)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		return edges[i].to < edges[j].to
	})
	for _, e := range edges {
		fmt.Fprintf(&b, "  %q -> %q;\n", e.from, e.to)
	}

	b.WriteString("}\n")
	return b.String()
}
