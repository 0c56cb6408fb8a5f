package scfg

import "scfg/scfgerr"

func (s *SCFG) headCandidates() []string {
	heads := make(map[string]bool, len(s.graph))
	for n := range s.graph {
		heads[n] = true
	}
	for _, b := range s.graph {
		for _, jt := range b.EffectiveJumpTargets() {
			delete(heads, jt)
		}
	}
	return sortedKeys(heads)
}

// JoinReturns closes the graph with a unique exit (C6). More than one
// block with no predecessor is a malformed-input condition this method
// does not attempt to fix: a well-formed input has exactly one entry. If
// exactly one block already has no effective successor, nothing is done.
// Otherwise a SyntheticReturn is inserted with predecessors set to every
// exiting block and no successors.
func (s *SCFG) JoinReturns() error {
	heads := s.headCandidates()
	if len(heads) > 1 {
		return scfgerr.MalformedInputf("multiple blocks have no predecessor", heads...)
	}
	var exiting []string
	for _, name := range s.Names() {
		if s.graph[name].IsExiting() {
			exiting = append(exiting, name)
		}
	}
	if len(exiting) == 1 {
		return nil
	}
	name := s.nameGen.NewBlockName(KindSynthReturn)
	return s.InsertSyntheticReturn(name, exiting, nil)
}

// JoinTailsAndExits closes off a set of tail (exiting) blocks and exit
// blocks down to a single tail and a single exit, inserting SyntheticTail
// and/or SyntheticExit blocks as needed. It returns the resulting unique
// tail and exit names. Branch restructuring (C8) uses this both to
// determine a branch body's continuation and to repair multi-exit bodies.
func (s *SCFG) JoinTailsAndExits(tails, exits []string) (string, string, error) {
	switch {
	case len(tails) == 1 && len(exits) == 1:
		return tails[0], exits[0], nil
	case len(tails) == 1 && len(exits) >= 2:
		soloExit := s.nameGen.NewBlockName(KindSynthExit)
		if err := s.InsertSyntheticExit(soloExit, tails, exits); err != nil {
			return "", "", err
		}
		return tails[0], soloExit, nil
	case len(tails) >= 2 && len(exits) == 1:
		soloTail := s.nameGen.NewBlockName(KindSynthTail)
		if err := s.InsertSyntheticTail(soloTail, tails, exits); err != nil {
			return "", "", err
		}
		return soloTail, exits[0], nil
	case len(tails) >= 2 && len(exits) >= 2:
		soloTail := s.nameGen.NewBlockName(KindSynthTail)
		soloExit := s.nameGen.NewBlockName(KindSynthExit)
		if err := s.InsertSyntheticTail(soloTail, tails, exits); err != nil {
			return "", "", err
		}
		if err := s.InsertSyntheticExit(soloExit, []string{soloTail}, exits); err != nil {
			return "", "", err
		}
		return soloTail, soloExit, nil
	default:
		return "", "", scfgerr.InvariantViolationf("join_tails_and_exits requires at least one tail and one exit")
	}
}
