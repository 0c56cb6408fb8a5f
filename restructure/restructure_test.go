package restructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scfg"
)

func TestRestructure_LoopFollowedByBranchNestsCorrectly(t *testing.T) {
	root := scfg.NewSCFG()
	require.NoError(t, root.Add(scfg.NewBasicBlock("entry", "loophead")))
	require.NoError(t, root.Add(scfg.NewBasicBlock("loophead", "loopbody")))
	require.NoError(t, root.Add(scfg.NewBasicBlock("loopbody", "loophead", "after")))
	require.NoError(t, root.Add(scfg.NewBasicBlock("after", "x", "y")))
	require.NoError(t, root.Add(scfg.NewBasicBlock("x", "tail")))
	require.NoError(t, root.Add(scfg.NewBasicBlock("y", "tail")))
	require.NoError(t, root.Add(scfg.NewBasicBlock("tail")))

	require.NoError(t, Restructure(root))

	// The whole loop-then-branch chain collapses into a single top-level
	// branch region (head, loop region, "after", and both arms all nest
	// inside it), with "tail" left outside as its sole successor.
	assert.Equal(t, 2, root.Len())
	head, err := root.FindHead()
	require.NoError(t, err)
	branch := root.MustGet(head)
	assert.Equal(t, scfg.BlockRegion, branch.Kind)
	assert.Equal(t, scfg.RegionBranch, branch.RegionKind)

	var foundLoop func(s *scfg.SCFG) bool
	foundLoop = func(s *scfg.SCFG) bool {
		for _, name := range s.Names() {
			b := s.MustGet(name)
			if b.Kind != scfg.BlockRegion {
				continue
			}
			if b.RegionKind == scfg.RegionLoop {
				return true
			}
			if foundLoop(b.Subregion) {
				return true
			}
		}
		return false
	}
	assert.True(t, foundLoop(root), "the loop must survive, nested somewhere in the region tree")
}

func TestRestructure_MultipleReturnsGetJoinedFirst(t *testing.T) {
	root := scfg.NewSCFG()
	require.NoError(t, root.Add(scfg.NewBasicBlock("entry", "a", "b")))
	require.NoError(t, root.Add(scfg.NewBasicBlock("a")))
	require.NoError(t, root.Add(scfg.NewBasicBlock("b")))

	require.NoError(t, Restructure(root))

	head, err := root.FindHead()
	require.NoError(t, err)
	assert.NotEmpty(t, head)
}
