package scfg

import "sort"

// InsertBlock inserts a new synthetic block of the given kind between
// predecessors and successors. Every predecessor's jump targets that
// appear in successors are rewritten, position by position, to target
// new_name instead; if successors is empty, new_name is simply appended
// (used to splice a terminal block onto blocks that previously had no
// jump targets at all, as in join_returns). A predecessor whose declared
// backedge targets one of successors has that backedge retargeted to
// new_name as well.
func (s *SCFG) InsertBlock(newName string, predecessors, successors []string, kind BlockKind) error {
	newBlock := NewSyntheticBlock(kind, newName, successors...)
	if err := s.Add(newBlock); err != nil {
		return err
	}
	succSet := toSet(successors)
	for _, name := range predecessors {
		block := s.Pop(name)
		raw := block.JumpTargets()
		var newRaw []string
		if len(successors) > 0 {
			newRaw = make([]string, len(raw))
			for i, t := range raw {
				if succSet[t] {
					newRaw[i] = newName
				} else {
					newRaw[i] = t
				}
			}
		} else {
			newRaw = append(append([]string(nil), raw...), newName)
		}
		nb := block.ReplaceJumpTargets(newRaw)
		for _, be := range block.Backedges() {
			if succSet[be] {
				nb = nb.RetargetBackedge(be, newName)
			}
		}
		s.Put(nb)
	}
	return nil
}

// InsertSyntheticExit inserts a SyntheticExit block. See InsertBlock.
func (s *SCFG) InsertSyntheticExit(newName string, predecessors, successors []string) error {
	return s.InsertBlock(newName, predecessors, successors, BlockSyntheticExit)
}

// InsertSyntheticTail inserts a SyntheticTail block. See InsertBlock.
func (s *SCFG) InsertSyntheticTail(newName string, predecessors, successors []string) error {
	return s.InsertBlock(newName, predecessors, successors, BlockSyntheticTail)
}

// InsertSyntheticReturn inserts a SyntheticReturn block. See InsertBlock.
func (s *SCFG) InsertSyntheticReturn(newName string, predecessors, successors []string) error {
	return s.InsertBlock(newName, predecessors, successors, BlockSyntheticReturn)
}

// InsertSyntheticFill inserts a SyntheticFill block. See InsertBlock.
func (s *SCFG) InsertSyntheticFill(newName string, predecessors, successors []string) error {
	return s.InsertBlock(newName, predecessors, successors, BlockSyntheticFill)
}

// InsertBlockAndControlBlocks inserts a new SyntheticHead block at a
// branching junction: for every predecessor, for every one of its jump
// targets that is among successors, a SyntheticAssignment block is spliced
// onto that edge, assigning a fresh integer tag to a shared control
// variable before falling through to new_name. new_name dispatches on that
// variable among successors, in the order the assignments were created
// (predecessors in caller-given order, successors in sorted order within
// each predecessor, matching the engine's deterministic tie-break rule).
func (s *SCFG) InsertBlockAndControlBlocks(newName string, predecessors, successors []string) {
	branchVariable := s.nameGen.NewVarName("control")
	value := 0
	var cases []BranchCase
	succSet := toSet(successors)
	for _, name := range predecessors {
		block := s.Pop(name)
		jt := block.JumpTargets()
		present := toSet(jt)
		var matched []string
		for suc := range succSet {
			if present[suc] {
				matched = append(matched, suc)
			}
		}
		sort.Strings(matched)
		for _, suc := range matched {
			synthAssign := s.nameGen.NewBlockName(KindSynthAssign)
			s.Put(NewSyntheticAssignment(synthAssign, newName, []VarAssignment{{Variable: branchVariable, Value: value}}))
			cases = append(cases, BranchCase{Value: value, Target: suc})
			for i, t := range jt {
				if t == suc {
					jt[i] = synthAssign
					break
				}
			}
			value++
		}
		s.Put(block.ReplaceJumpTargets(jt))
	}
	s.Put(NewSyntheticBranch(BlockSyntheticHead, newName, branchVariable, cases, successors...))
}
