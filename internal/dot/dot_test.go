package dot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scfg"
)

func TestRender_EmitsNodesAndEdgesDeterministically(t *testing.T) {
	g := scfg.NewSCFG()
	require.NoError(t, g.Add(scfg.NewBasicBlock("a", "b", "c")))
	require.NoError(t, g.Add(scfg.NewBasicBlock("b", "c")))
	require.NoError(t, g.Add(scfg.NewBasicBlock("c")))

	out := Render(g)

	assert.Contains(t, out, "digraph scfg {")
	assert.Contains(t, out, `"a" [label="a\nbasic" shape=box];`)
	assert.Contains(t, out, `"a" -> "b";`)
	assert.Contains(t, out, `"a" -> "c";`)
	assert.Contains(t, out, `"b" -> "c";`)

	// rendering twice must produce byte-identical output
	assert.Equal(t, out, Render(g))
}

func TestRender_LabelsRegionNodesWithBox3d(t *testing.T) {
	g := scfg.NewSCFG()
	sub := scfg.NewSCFGWithNameGen(g.NameGen())
	require.NoError(t, sub.Add(scfg.NewBasicBlock("inner")))
	region := scfg.NewRegionBlock("r", scfg.RegionLoop, "inner", sub, "inner")
	sub.SetRegion(region)
	require.NoError(t, g.Add(region))

	out := Render(g)
	assert.Contains(t, out, `shape=box3d`)
	assert.NotContains(t, out, "inner")
}
