// Copyright 2011 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package scfg

import "scfg/scfgerr"

// BlockKind discriminates the variants a Block can take. Blocks are a
// tagged union: every variant shares the name/jump-target/backedge fields,
// and variant-specific data lives in fields that are only meaningful for
// that kind. Behavior dispatches on Kind rather than on Go's type system,
// per the "tagged variants, not inheritance" design of this package.
type BlockKind string

const (
	// BlockBasic is a bare, payload-free block, used for graphs built
	// directly from names (tests, YAML fixtures) rather than from a
	// bytecode or AST front end.
	BlockBasic BlockKind = "basic"
	// BlockPayload carries an opaque body the engine never inspects,
	// identified by a [Begin, End) range (a bytecode offset range or an
	// AST statement-index range, depending on the front end).
	BlockPayload BlockKind = "payload"

	BlockSyntheticExit         BlockKind = "synthetic_exit"
	BlockSyntheticReturn       BlockKind = "synthetic_return"
	BlockSyntheticTail         BlockKind = "synthetic_tail"
	BlockSyntheticFill         BlockKind = "synthetic_fill"
	BlockSyntheticAssignment   BlockKind = "synthetic_assignment"
	BlockSyntheticHead         BlockKind = "synthetic_head"
	BlockSyntheticExitingLatch BlockKind = "synthetic_exiting_latch"
	BlockSyntheticExitBranch   BlockKind = "synthetic_exit_branch"
	BlockRegion                BlockKind = "region"
)

// VarAssignment is one entry of a SyntheticAssignment block's ordered
// variable-to-literal assignment table.
type VarAssignment struct {
	Variable string
	Value    int
}

// BranchCase is one entry of a branching block's control-variable dispatch
// table, mapping an integer tag to the jump target it selects.
type BranchCase struct {
	Value  int
	Target string
}

// Block is an immutable(-by-convention) record describing one node of an
// SCFG. Edits never mutate a Block in place; ReplaceJumpTargets and
// ReplaceBackedge return a new value with the requested field changed,
// mirroring the dataclasses.replace pattern of the engine this package
// implements, adapted to a language without it.
type Block struct {
	Kind     BlockKind
	name     string
	targets  []string
	backedge string // "" means no declared backedge

	// Begin, End are meaningful only for BlockPayload.
	Begin int
	End   int

	// Assignments is meaningful only for BlockSyntheticAssignment. It is
	// an ordered slice (not a map) so that YAML/dict encoding stays
	// deterministic without an extra sort pass.
	Assignments []VarAssignment

	// Variable and Cases are meaningful only for the three branching
	// kinds: BlockSyntheticHead, BlockSyntheticExitingLatch, and
	// BlockSyntheticExitBranch.
	Variable string
	Cases    []BranchCase

	// RegionKind, Header, Subregion, Exiting, ParentRegion are meaningful
	// only for BlockRegion. Unlike the rest of Block's fields, these are
	// updated in place (ReplaceHeader, ReplaceExiting, SetParentRegion)
	// rather than via copy-on-write: region bookkeeping is maintained as
	// the region tree is built bottom-up, and a RegionBlock's identity
	// (its name) must stay fixed while its header/exiting reassign as
	// nested extraction proceeds.
	RegionKind   string
	Header       string
	Subregion    *SCFG
	Exiting      string
	ParentRegion *Block
}

// NewBasicBlock returns a bare, payload-free block.
func NewBasicBlock(name string, jumpTargets ...string) *Block {
	return &Block{Kind: BlockBasic, name: name, targets: append([]string(nil), jumpTargets...)}
}

// NewPayloadBlock returns a block carrying an opaque [begin, end) payload.
func NewPayloadBlock(name string, begin, end int, jumpTargets ...string) *Block {
	return &Block{Kind: BlockPayload, name: name, targets: append([]string(nil), jumpTargets...), Begin: begin, End: end}
}

// NewSyntheticBlock returns an empty-payload synthetic block of the given
// kind. kind must be one of the non-branching, non-assignment, non-region
// synthetic kinds (exit, return, tail, fill).
func NewSyntheticBlock(kind BlockKind, name string, jumpTargets ...string) *Block {
	return &Block{Kind: kind, name: name, targets: append([]string(nil), jumpTargets...)}
}

// NewSyntheticAssignment returns a block that assigns control variables on
// entry before falling through to its single jump target.
func NewSyntheticAssignment(name string, target string, assignments []VarAssignment) *Block {
	var targets []string
	if target != "" {
		targets = []string{target}
	}
	return &Block{Kind: BlockSyntheticAssignment, name: name, targets: targets, Assignments: append([]VarAssignment(nil), assignments...)}
}

// NewSyntheticBranch returns a branching block of one of the three branch
// kinds (head, exiting latch, exit branch) that dispatches on variable
// among the given cases.
func NewSyntheticBranch(kind BlockKind, name string, variable string, cases []BranchCase, jumpTargets ...string) *Block {
	return &Block{
		Kind:     kind,
		name:     name,
		targets:  append([]string(nil), jumpTargets...),
		Variable: variable,
		Cases:    append([]BranchCase(nil), cases...),
	}
}

// NewRegionBlock wraps a subregion as a single node. successors are the
// jump targets of the region's exiting block as seen from outside.
func NewRegionBlock(name, regionKind, header string, subregion *SCFG, exiting string, successors ...string) *Block {
	return &Block{
		Kind:       BlockRegion,
		name:       name,
		targets:    append([]string(nil), successors...),
		RegionKind: regionKind,
		Header:     header,
		Subregion:  subregion,
		Exiting:    exiting,
	}
}

// ReplaceHeader updates, in place, the header of a RegionBlock.
func (b *Block) ReplaceHeader(newHeader string) { b.Header = newHeader }

// ReplaceExiting updates, in place, the exiting block name of a
// RegionBlock.
func (b *Block) ReplaceExiting(newExiting string) { b.Exiting = newExiting }

// SetParentRegion updates, in place, the region that owns this RegionBlock
// one level up the hierarchy.
func (b *Block) SetParentRegion(parent *Block) { b.ParentRegion = parent }

// Name returns the block's unique name within its containing graph.
func (b *Block) Name() string { return b.name }

// JumpTargets returns the ordered, raw successor list, including any
// target also marked as a backedge.
func (b *Block) JumpTargets() []string { return append([]string(nil), b.targets...) }

// Backedges returns the subset (at most one element) of JumpTargets marked
// as a backedge.
func (b *Block) Backedges() []string {
	if b.backedge == "" {
		return nil
	}
	return []string{b.backedge}
}

// EffectiveJumpTargets returns JumpTargets with any backedge excluded. This
// is the edge set traversed when computing forward structure.
func (b *Block) EffectiveJumpTargets() []string {
	if b.backedge == "" {
		return b.JumpTargets()
	}
	out := make([]string, 0, len(b.targets))
	for _, t := range b.targets {
		if t != b.backedge {
			out = append(out, t)
		}
	}
	return out
}

// IsExiting reports whether the block has no effective jump target.
func (b *Block) IsExiting() bool { return len(b.EffectiveJumpTargets()) == 0 }

// Fallthrough reports whether the block has exactly one effective jump
// target.
func (b *Block) Fallthrough() bool { return len(b.EffectiveJumpTargets()) == 1 }

func (b *Block) isBranchKind() bool {
	switch b.Kind {
	case BlockSyntheticHead, BlockSyntheticExitingLatch, BlockSyntheticExitBranch:
		return true
	}
	return false
}

func (b *Block) clone() *Block {
	nb := *b
	nb.targets = append([]string(nil), b.targets...)
	nb.Assignments = append([]VarAssignment(nil), b.Assignments...)
	nb.Cases = append([]BranchCase(nil), b.Cases...)
	return &nb
}

// ReplaceJumpTargets returns a new Block with its jump targets replaced by
// the given ordered list. Backedges are not updated; a target that was
// marked as a backedge and is absent from the new list must be cleared
// separately. For branch-kind blocks, the single differing target is also
// substituted in the block's Cases dispatch table (the same assumption the
// original engine makes: exactly one jump target changes per call).
func (b *Block) ReplaceJumpTargets(targets []string) *Block {
	nb := b.clone()
	nb.targets = append([]string(nil), targets...)
	if b.isBranchKind() {
		oldSet := toSet(b.targets)
		newSet := toSet(targets)
		var removed, added string
		for _, t := range b.targets {
			if !newSet[t] {
				removed = t
			}
		}
		for _, t := range targets {
			if !oldSet[t] {
				added = t
			}
		}
		cases := make([]BranchCase, 0, len(b.Cases))
		for _, c := range b.Cases {
			if removed != "" && c.Target == removed {
				cases = append(cases, BranchCase{Value: c.Value, Target: added})
			} else {
				cases = append(cases, c)
			}
		}
		nb.Cases = cases
	}
	return nb
}

// ReplaceBackedge declares target (which must be an effective jump target
// of this block) as the block's backedge. A block may carry at most one
// backedge; calling this a second time is an invariant violation. If
// target is not among the block's jump targets, the block is returned
// unchanged.
func (b *Block) ReplaceBackedge(target string) (*Block, error) {
	found := false
	for _, t := range b.EffectiveJumpTargets() {
		if t == target {
			found = true
			break
		}
	}
	if !found {
		return b, nil
	}
	if b.backedge != "" {
		return nil, scfgerr.InvariantViolationf("block already declares a backedge", b.name)
	}
	nb := b.clone()
	nb.backedge = target
	return nb, nil
}

// RetargetBackedge returns a new Block whose declared backedge, if it
// equals oldTarget, is changed to newTarget. Used when a synthetic block
// is spliced onto an edge that happens to carry a backedge.
func (b *Block) RetargetBackedge(oldTarget, newTarget string) *Block {
	if b.backedge != oldTarget {
		return b
	}
	nb := b.clone()
	nb.backedge = newTarget
	return nb
}

func toSet(xs []string) map[string]bool {
	m := make(map[string]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}
