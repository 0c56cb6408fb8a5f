// Package scfgerr defines the typed error kinds the restructuring engine
// reports when it encounters a malformed graph or detects a broken
// invariant in one of its own passes.
package scfgerr

import "fmt"

// MalformedInput reports a problem with the graph as handed to the engine:
// a reference to an undefined block, a duplicate name, or more than one
// block with no predecessor prior to join_returns.
type MalformedInput struct {
	Reason string
	Blocks []string
}

func (e *MalformedInput) Error() string {
	if len(e.Blocks) == 0 {
		return fmt.Sprintf("malformed input: %s", e.Reason)
	}
	return fmt.Sprintf("malformed input: %s (blocks: %v)", e.Reason, e.Blocks)
}

// MalformedInputf builds a MalformedInput naming the offending blocks.
func MalformedInputf(reason string, blocks ...string) error {
	return &MalformedInput{Reason: reason, Blocks: blocks}
}

// InvariantViolation reports that a transformation pass produced a graph
// that does not satisfy the structural invariant the pass is supposed to
// establish. This always indicates an engine bug, not a caller error.
type InvariantViolation struct {
	Reason string
	Blocks []string
}

func (e *InvariantViolation) Error() string {
	if len(e.Blocks) == 0 {
		return fmt.Sprintf("invariant violation: %s", e.Reason)
	}
	return fmt.Sprintf("invariant violation: %s (blocks: %v)", e.Reason, e.Blocks)
}

// InvariantViolationf builds an InvariantViolation naming the offending
// blocks. Callers of core passes should treat this as fatal: panic rather
// than attempt recovery, per the engine's defensive-assertion policy.
func InvariantViolationf(reason string, blocks ...string) error {
	return &InvariantViolation{Reason: reason, Blocks: blocks}
}

// UnreachableBlock reports a block present in the graph but not reachable
// from the head. Restructuring passes do not prune dead code; this error
// is only raised by analyses that are asked to flag the condition.
type UnreachableBlock struct {
	Blocks []string
}

func (e *UnreachableBlock) Error() string {
	return fmt.Sprintf("unreachable blocks: %v", e.Blocks)
}

// UnreachableBlockf builds an UnreachableBlock error for the given names.
func UnreachableBlockf(blocks ...string) error {
	return &UnreachableBlock{Blocks: blocks}
}
