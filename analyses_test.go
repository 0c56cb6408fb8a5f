package scfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scfg/internal/sccalt"
)

func TestFindHead_SingleHead(t *testing.T) {
	g := NewSCFG()
	require.NoError(t, g.Add(NewBasicBlock("a", "b")))
	require.NoError(t, g.Add(NewBasicBlock("b")))
	head, err := g.FindHead()
	require.NoError(t, err)
	assert.Equal(t, "a", head)
}

func TestFindHead_ErrorsOnMultipleCandidates(t *testing.T) {
	g := NewSCFG()
	require.NoError(t, g.Add(NewBasicBlock("a")))
	require.NoError(t, g.Add(NewBasicBlock("b")))
	_, err := g.FindHead()
	require.Error(t, err)
}

func TestComputeSCC_FindsSelfLoopAndMultiNodeCycle(t *testing.T) {
	g := NewSCFG()
	require.NoError(t, g.Add(NewBasicBlock("a", "b")))
	require.NoError(t, g.Add(NewBasicBlock("b", "c", "b"))) // self loop on b
	require.NoError(t, g.Add(NewBasicBlock("c", "d", "e")))
	require.NoError(t, g.Add(NewBasicBlock("d", "c")))
	require.NoError(t, g.Add(NewBasicBlock("e")))

	sccs := g.ComputeSCC()
	var hasSelfLoop, hasCD bool
	for _, comp := range sccs {
		if len(comp) == 1 && comp[0] == "b" {
			hasSelfLoop = true
		}
		if len(comp) == 2 && comp[0] == "c" && comp[1] == "d" {
			hasCD = true
		}
	}
	assert.True(t, hasSelfLoop, "expected b to form its own self-loop component")
	assert.True(t, hasCD, "expected c,d to form a two-node cycle component")
}

func TestComputeSCC_AgreesWithIndependentForwardBackwardTrim(t *testing.T) {
	g := NewSCFG()
	require.NoError(t, g.Add(NewBasicBlock("a", "b")))
	require.NoError(t, g.Add(NewBasicBlock("b", "c", "b")))
	require.NoError(t, g.Add(NewBasicBlock("c", "d", "e")))
	require.NoError(t, g.Add(NewBasicBlock("d", "c")))
	require.NoError(t, g.Add(NewBasicBlock("e")))

	tarjan := g.ComputeSCC()
	tarjanLoops := loopComponents(g, tarjan)

	altLoops := sccalt.FindLoops(g.Names(), func(n string) []string {
		return g.MustGet(n).JumpTargets()
	})

	assert.ElementsMatch(t, altLoops, tarjanLoops)
}

// loopComponents filters ComputeSCC's output down to the components that
// qualify as loops: more than one member, or a single member with a
// self-edge. This mirrors the filter the loop restructuring pass applies
// to its own ComputeSCC call.
func loopComponents(g *SCFG, sccs [][]string) [][]string {
	var out [][]string
	for _, comp := range sccs {
		if len(comp) > 1 {
			out = append(out, comp)
			continue
		}
		for _, t := range g.MustGet(comp[0]).JumpTargets() {
			if t == comp[0] {
				out = append(out, comp)
				break
			}
		}
	}
	return out
}

func TestFindHeadersAndEntries_SimpleSubgraph(t *testing.T) {
	g := NewSCFG()
	require.NoError(t, g.Add(NewBasicBlock("a", "b")))
	require.NoError(t, g.Add(NewBasicBlock("b", "c")))
	require.NoError(t, g.Add(NewBasicBlock("c")))

	headers, entries, err := g.FindHeadersAndEntries([]string{"b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, headers)
	assert.Equal(t, []string{"a"}, entries)
}

func TestFindExitingAndExits_BlockLeavingSubgraphIsExiting(t *testing.T) {
	g := NewSCFG()
	require.NoError(t, g.Add(NewBasicBlock("a", "b")))
	require.NoError(t, g.Add(NewBasicBlock("b", "c")))
	require.NoError(t, g.Add(NewBasicBlock("c")))

	exiting, exits := g.FindExitingAndExits([]string{"a", "b"})
	assert.Equal(t, []string{"b"}, exiting)
	assert.Equal(t, []string{"c"}, exits)
}

func TestIsReachableDFS_IgnoresBackedges(t *testing.T) {
	g := NewSCFG()
	require.NoError(t, g.Add(NewBasicBlock("a", "b")))
	loopBlock := NewBasicBlock("b", "c", "a")
	nb, err := loopBlock.ReplaceBackedge("a")
	require.NoError(t, err)
	g.Put(nb)
	require.NoError(t, g.Add(NewBasicBlock("c")))

	assert.True(t, g.IsReachableDFS("a", "c"))
	assert.False(t, g.IsReachableDFS("b", "a"))
}
