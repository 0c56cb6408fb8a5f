package scfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlock_EffectiveJumpTargetsExcludesBackedge(t *testing.T) {
	b := NewBasicBlock("a", "b", "c")
	assert.Equal(t, []string{"b", "c"}, b.JumpTargets())
	assert.Equal(t, []string{"b", "c"}, b.EffectiveJumpTargets())

	nb, err := b.ReplaceBackedge("c")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, nb.EffectiveJumpTargets())
	assert.Equal(t, []string{"c"}, nb.Backedges())
	assert.Equal(t, []string{"b", "c"}, nb.JumpTargets())
}

func TestBlock_ReplaceBackedgeRejectsSecondDeclaration(t *testing.T) {
	b := NewBasicBlock("a", "b", "c")
	nb, err := b.ReplaceBackedge("b")
	require.NoError(t, err)

	_, err = nb.ReplaceBackedge("c")
	require.Error(t, err)
}

func TestBlock_ReplaceBackedgeNoOpWhenTargetAbsent(t *testing.T) {
	b := NewBasicBlock("a", "b")
	nb, err := b.ReplaceBackedge("z")
	require.NoError(t, err)
	assert.Same(t, b, nb)
}

func TestBlock_IsExitingAndFallthrough(t *testing.T) {
	exiting := NewBasicBlock("a")
	assert.True(t, exiting.IsExiting())
	assert.False(t, exiting.Fallthrough())

	solo := NewBasicBlock("a", "b")
	assert.False(t, solo.IsExiting())
	assert.True(t, solo.Fallthrough())
}

func TestBlock_ReplaceJumpTargetsRewritesBranchCases(t *testing.T) {
	cases := []BranchCase{{Value: 0, Target: "x"}, {Value: 1, Target: "y"}}
	b := NewSyntheticBranch(BlockSyntheticHead, "h", "ctrl", cases, "x", "y")

	nb := b.ReplaceJumpTargets([]string{"x", "z"})
	assert.Equal(t, []string{"x", "z"}, nb.JumpTargets())
	assert.Equal(t, []BranchCase{{Value: 0, Target: "x"}, {Value: 1, Target: "z"}}, nb.Cases)
	// original is untouched
	assert.Equal(t, []string{"x", "y"}, b.JumpTargets())
}

func TestBlock_RetargetBackedge(t *testing.T) {
	b := NewBasicBlock("a", "b", "c")
	nb, err := b.ReplaceBackedge("c")
	require.NoError(t, err)

	retargeted := nb.RetargetBackedge("c", "z")
	assert.Equal(t, []string{"z"}, retargeted.Backedges())

	unchanged := nb.RetargetBackedge("nope", "z")
	assert.Same(t, nb, unchanged)
}
