package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scfg"
)

func TestRun_FollowsFallthroughChain(t *testing.T) {
	g := scfg.NewSCFG()
	require.NoError(t, g.Add(scfg.NewBasicBlock("a", "b")))
	require.NoError(t, g.Add(scfg.NewBasicBlock("b", "c")))
	require.NoError(t, g.Add(scfg.NewBasicBlock("c")))

	trace, err := Run(g, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, trace)
}

func TestRun_DispatchesOnControlVariable(t *testing.T) {
	g := scfg.NewSCFG()
	cases := []scfg.BranchCase{{Value: 0, Target: "x"}, {Value: 1, Target: "y"}}
	require.NoError(t, g.Add(scfg.NewSyntheticBranch(scfg.BlockSyntheticHead, "h", "v", cases, "x", "y")))
	require.NoError(t, g.Add(scfg.NewBasicBlock("x")))
	require.NoError(t, g.Add(scfg.NewBasicBlock("y")))

	trace, err := Run(g, map[string]int{"v": 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"h", "y"}, trace)
}

func TestRun_ErrorsWhenControlVariableUnassigned(t *testing.T) {
	g := scfg.NewSCFG()
	cases := []scfg.BranchCase{{Value: 0, Target: "x"}}
	require.NoError(t, g.Add(scfg.NewSyntheticBranch(scfg.BlockSyntheticHead, "h", "v", cases, "x")))
	require.NoError(t, g.Add(scfg.NewBasicBlock("x")))

	_, err := Run(g, nil)
	require.Error(t, err)
}

func TestRun_DescendsRegionAndContinuesPastIt(t *testing.T) {
	g := scfg.NewSCFG()
	sub := scfg.NewSCFGWithNameGen(g.NameGen())
	require.NoError(t, sub.Add(scfg.NewBasicBlock("inner1", "inner2")))
	require.NoError(t, sub.Add(scfg.NewBasicBlock("inner2", "after")))
	region := scfg.NewRegionBlock("r", scfg.RegionBranch, "inner1", sub, "inner2", "after")
	sub.SetRegion(region)
	require.NoError(t, g.Add(region))
	require.NoError(t, g.Add(scfg.NewBasicBlock("after")))

	trace, err := Run(g, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"r", "inner1", "inner2", "after"}, trace)
}

func TestRun_AssignmentBlockUpdatesStateThenFallsThrough(t *testing.T) {
	g := scfg.NewSCFG()
	require.NoError(t, g.Add(scfg.NewSyntheticAssignment("asn", "tail", []scfg.VarAssignment{{Variable: "v", Value: 5}})))
	require.NoError(t, g.Add(scfg.NewBasicBlock("tail")))

	trace, err := Run(g, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"asn", "tail"}, trace)
}
