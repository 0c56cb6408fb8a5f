package pyblock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scfg"
)

func TestNewPayload_BuildsPayloadBlockWithByteRange(t *testing.T) {
	b := NewPayload("bb0", 4, 12, "bb1", "bb2")
	assert.Equal(t, scfg.BlockPayload, b.Kind)
	assert.Equal(t, 4, b.Begin)
	assert.Equal(t, 12, b.End)
	assert.Equal(t, []string{"bb1", "bb2"}, b.JumpTargets())
}
