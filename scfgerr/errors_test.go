package scfgerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMalformedInputf_FormatsWithAndWithoutBlocks(t *testing.T) {
	err := MalformedInputf("duplicate block name", "a")
	assert.Equal(t, "malformed input: duplicate block name (blocks: [a])", err.Error())

	bare := MalformedInputf("no candidates")
	assert.Equal(t, "malformed input: no candidates", bare.Error())

	var target *MalformedInput
	assert.True(t, errors.As(err, &target))
}

func TestInvariantViolationf_FormatsWithAndWithoutBlocks(t *testing.T) {
	err := InvariantViolationf("region must have exactly one header", "h1", "h2")
	assert.Equal(t, "invariant violation: region must have exactly one header (blocks: [h1 h2])", err.Error())

	var target *InvariantViolation
	assert.True(t, errors.As(err, &target))
}

func TestUnreachableBlockf_Formats(t *testing.T) {
	err := UnreachableBlockf("dead1", "dead2")
	assert.Equal(t, "unreachable blocks: [dead1 dead2]", err.Error())

	var target *UnreachableBlock
	assert.True(t, errors.As(err, &target))
}
