package scfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameGenerator_CountersAreKindScopedAndMonotonic(t *testing.T) {
	g := NewNameGenerator()
	assert.Equal(t, "loop_block_0", g.NewBlockName("loop"))
	assert.Equal(t, "loop_block_1", g.NewBlockName("loop"))
	assert.Equal(t, "branch_block_0", g.NewBlockName("branch"))
}

func TestNameGenerator_RegionAndVarNamesUseDistinctNamespaces(t *testing.T) {
	g := NewNameGenerator()
	assert.Equal(t, "loop_region_0", g.NewRegionName("loop"))
	// The "loop" counter is shared, so the region name above advanced it.
	assert.Equal(t, "loop_block_1", g.NewBlockName("loop"))
	assert.Equal(t, "__scfg_control_var_0__", g.NewVarName("control"))
	assert.Equal(t, "__scfg_control_var_1__", g.NewVarName("control"))
}
