package restructure

import "scfg"

// RestructureLoop finds every loop (strongly connected component with more
// than one member, or a single block that jumps to itself) inside
// parentRegion's subregion, restructures each one so it has a single
// header and a single exiting latch, and wraps it into a loop region.
// Loops are processed bottom-up by iterating the SCC list as returned by
// ComputeSCC, same as the engine this package is ported from.
func RestructureLoop(parentRegion *scfg.Block) error {
	s := parentRegion.Subregion
	sccs := s.ComputeSCC()

	var loops [][]string
	for _, comp := range sccs {
		if len(comp) > 1 {
			loops = append(loops, comp)
			continue
		}
		name := comp[0]
		for _, jt := range s.MustGet(name).JumpTargets() {
			if jt == name {
				loops = append(loops, comp)
				break
			}
		}
	}

	for _, members := range loops {
		loop := map[string]bool{}
		for _, m := range members {
			loop[m] = true
		}
		loopHead, err := loopRestructureHelper(s, loop)
		if err != nil {
			return err
		}
		if _, err := s.WrapRegion(loopHead, sortedSetKeys(loop), scfg.RegionLoop); err != nil {
			return err
		}
	}
	return nil
}

// loopRestructureHelper applies Bahmann2015 section 4.1's loop
// restructuring to loop in place, adding any synthetic blocks it creates
// into the loop set, and returns the loop's single header.
func loopRestructureHelper(s *scfg.SCFG, loop map[string]bool) (string, error) {
	members := sortedSetKeys(loop)
	headers, entries, err := s.FindHeadersAndEntries(members)
	if err != nil {
		return "", err
	}
	exitingBlocks, exitBlocks := s.FindExitingAndExits(members)

	headersWereUnified := false
	var loopHead, soloHeadName string
	if len(headers) > 1 {
		headersWereUnified = true
		soloHeadName = s.NameGen().NewBlockName(scfg.KindSynthHead)
		s.InsertBlockAndControlBlocks(soloHeadName, entries, headers)
		loop[soloHeadName] = true
		loopHead = soloHeadName
	} else {
		loopHead = headers[0]
	}

	headerSet := toStrSet(headers)
	var backedgeBlocks []string
	for _, name := range sortedSetKeys(loop) {
		for _, jt := range s.MustGet(name).JumpTargets() {
			if headerSet[jt] {
				backedgeBlocks = append(backedgeBlocks, name)
				break
			}
		}
	}

	if len(backedgeBlocks) == 1 && len(exitingBlocks) == 1 && backedgeBlocks[0] == exitingBlocks[0] {
		popped := s.Pop(backedgeBlocks[0])
		nb, err := popped.ReplaceBackedge(loopHead)
		if err != nil {
			return "", err
		}
		s.Put(nb)
		return loopHead, nil
	}

	synthExitingLatch := s.NameGen().NewBlockName(scfg.KindSynthExitingLatch)
	needsSynthExit := len(exitBlocks) > 1
	var synthExit string
	if needsSynthExit {
		synthExit = s.NameGen().NewBlockName(scfg.KindSynthExit)
	}

	var exitVariable string
	if headersWereUnified {
		exitVariable = s.MustGet(soloHeadName).Variable
	} else {
		exitVariable = s.NameGen().NewVarName("exit")
	}
	backedgeVariable := s.NameGen().NewVarName("backedge")

	exitValueTable := exitBlocks
	var backedgeValueTable []string
	if needsSynthExit {
		backedgeValueTable = []string{loopHead, synthExit}
	} else {
		backedgeValueTable = []string{loopHead, exitBlocks[0]}
	}
	var headerValueTable []string
	if headersWereUnified {
		headerValueTable = casesToValueTable(s.MustGet(soloHeadName).Cases)
	}

	doms := domSets(s.Graph())
	exitBlockSet := toStrSet(exitBlocks)
	backedgeBlockSet := toStrSet(backedgeBlocks)
	exitingBlockSet := toStrSet(exitingBlocks)

	newBlocks := map[string]bool{}
	for _, name := range sortedSetKeys(loop) {
		if !exitingBlockSet[name] && !backedgeBlockSet[name] {
			continue
		}
		block := s.MustGet(name)
		raw := block.JumpTargets()
		newJT := append([]string(nil), raw...)

		for _, jt := range raw {
			switch {
			case exitBlockSet[jt]:
				synthAssign := s.NameGen().NewBlockName(scfg.KindSynthAssign)
				newBlocks[synthAssign] = true
				var assignments []scfg.VarAssignment
				target := exitBlocks[0]
				if needsSynthExit {
					assignments = append(assignments, scfg.VarAssignment{Variable: exitVariable, Value: reverseLookup(exitValueTable, jt)})
					target = synthExit
				}
				assignments = append(assignments, scfg.VarAssignment{Variable: backedgeVariable, Value: reverseLookup(backedgeValueTable, target)})
				if err := s.Add(scfg.NewSyntheticAssignment(synthAssign, synthExitingLatch, assignments)); err != nil {
					return "", err
				}
				replaceFirst(newJT, jt, synthAssign)

			case headerSet[jt] && (!domContains(doms, jt, name) || name == jt):
				synthAssign := s.NameGen().NewBlockName(scfg.KindSynthAssign)
				newBlocks[synthAssign] = true
				assignments := []scfg.VarAssignment{
					{Variable: backedgeVariable, Value: reverseLookup(backedgeValueTable, loopHead)},
				}
				if needsSynthExit || headersWereUnified {
					assignments = append(assignments, scfg.VarAssignment{Variable: exitVariable, Value: reverseLookup(headerValueTable, jt)})
				}
				if err := s.Add(scfg.NewSyntheticAssignment(synthAssign, synthExitingLatch, assignments)); err != nil {
					return "", err
				}
				replaceFirst(newJT, jt, synthAssign)
			}
		}

		s.Put(s.Pop(name).ReplaceJumpTargets(newJT))
	}
	for nb := range newBlocks {
		loop[nb] = true
	}

	latchTarget := exitBlocks[0]
	if needsSynthExit {
		latchTarget = synthExit
	}
	latchBlock := scfg.NewSyntheticBranch(scfg.BlockSyntheticExitingLatch, synthExitingLatch, backedgeVariable,
		valueTableToCases(backedgeValueTable), latchTarget, loopHead)
	latchBlock, err = latchBlock.ReplaceBackedge(loopHead)
	if err != nil {
		return "", err
	}
	loop[synthExitingLatch] = true
	if err := s.Add(latchBlock); err != nil {
		return "", err
	}

	if needsSynthExit {
		exitBlock := scfg.NewSyntheticBranch(scfg.BlockSyntheticExitBranch, synthExit, exitVariable,
			valueTableToCases(exitValueTable), exitBlocks...)
		if err := s.Add(exitBlock); err != nil {
			return "", err
		}
	}

	return loopHead, nil
}

func toStrSet(xs []string) map[string]bool {
	m := make(map[string]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}

func reverseLookup(table []string, value string) int {
	for i, v := range table {
		if v == value {
			return i
		}
	}
	return -1
}

func replaceFirst(xs []string, old, new string) {
	for i, v := range xs {
		if v == old {
			xs[i] = new
			return
		}
	}
}

func domContains(doms map[string]map[string]bool, of, candidate string) bool {
	set, ok := doms[of]
	return ok && set[candidate]
}

func casesToValueTable(cases []scfg.BranchCase) []string {
	out := make([]string, len(cases))
	for _, c := range cases {
		out[c.Value] = c.Target
	}
	return out
}

func valueTableToCases(table []string) []scfg.BranchCase {
	out := make([]scfg.BranchCase, len(table))
	for i, v := range table {
		out[i] = scfg.BranchCase{Value: i, Target: v}
	}
	return out
}
