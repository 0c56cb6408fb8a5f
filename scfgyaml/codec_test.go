package scfgyaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scfg"
)

func sampleGraph(t *testing.T) *scfg.SCFG {
	t.Helper()
	g := scfg.NewSCFG()
	require.NoError(t, g.Add(scfg.NewPayloadBlock("entry", 0, 10, "mid")))
	require.NoError(t, g.Add(scfg.NewBasicBlock("mid", "tail")))
	require.NoError(t, g.Add(scfg.NewBasicBlock("tail")))
	return g
}

func TestToYAMLFromYAML_RoundTripsPayloadBlock(t *testing.T) {
	g := sampleGraph(t)

	data, err := ToYAML(g)
	require.NoError(t, err)

	back, err := FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, g.Names(), back.Names())
	entry := back.MustGet("entry")
	assert.Equal(t, scfg.BlockPayload, entry.Kind)
	assert.Equal(t, 0, entry.Begin)
	assert.Equal(t, 10, entry.End)
	assert.Equal(t, []string{"mid"}, entry.JumpTargets())
}

func TestToYAMLFromYAML_RoundTripsRegionBlockRecursively(t *testing.T) {
	g := scfg.NewSCFG()
	require.NoError(t, g.Add(scfg.NewBasicBlock("entry", "r")))
	sub := scfg.NewSCFGWithNameGen(g.NameGen())
	require.NoError(t, sub.Add(scfg.NewBasicBlock("inner", "exit")))
	region := scfg.NewRegionBlock("r", scfg.RegionBranch, "inner", sub, "inner", "exit")
	sub.SetRegion(region)
	require.NoError(t, g.Add(region))
	require.NoError(t, g.Add(scfg.NewBasicBlock("exit")))

	data, err := ToYAML(g)
	require.NoError(t, err)

	back, err := FromYAML(data)
	require.NoError(t, err)

	r := back.MustGet("r")
	require.Equal(t, scfg.BlockRegion, r.Kind)
	assert.Equal(t, scfg.RegionBranch, r.RegionKind)
	assert.Equal(t, "inner", r.Header)
	assert.Equal(t, "inner", r.Exiting)
	require.True(t, r.Subregion.Contains("inner"))
	assert.Same(t, r, r.Subregion.Region())
}

func TestToDictFromDict_RoundTrips(t *testing.T) {
	g := sampleGraph(t)

	dict, err := ToDict(g)
	require.NoError(t, err)

	back, err := FromDict(dict)
	require.NoError(t, err)
	assert.Equal(t, g.Names(), back.Names())
}

func TestBinaryMarshalUnmarshal_RoundTripsBackedge(t *testing.T) {
	g := scfg.NewSCFG()
	require.NoError(t, g.Add(scfg.NewBasicBlock("entry", "head")))
	require.NoError(t, g.Add(scfg.NewBasicBlock("head", "body")))
	loop := scfg.NewBasicBlock("body", "head", "exit")
	nb, err := loop.ReplaceBackedge("head")
	require.NoError(t, err)
	g.Put(nb)
	require.NoError(t, g.Add(scfg.NewBasicBlock("exit")))

	data, err := BinaryMarshal(g)
	require.NoError(t, err)

	back, err := BinaryUnmarshal(data)
	require.NoError(t, err)

	body := back.MustGet("body")
	assert.Equal(t, []string{"head"}, body.Backedges())
	assert.Equal(t, []string{"head", "exit"}, body.JumpTargets())
}
