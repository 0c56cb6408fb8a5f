// Package sim provides a block-level simulator over an SCFG, restructured
// or not, that reports the trace of block names a run visits.
package sim

import (
	"scfg"
	"scfg/scfgerr"
)

// Run walks g from its head, following jump targets (fallthrough for
// single-target blocks, control-variable dispatch for SyntheticHead /
// SyntheticExitingLatch / SyntheticExitBranch, applied assignment for
// SyntheticAssignment), recursing into RegionBlock subregions, until it
// reaches a block with no further target. It returns the ordered trace of
// every block name visited, at every nesting level.
func Run(g *scfg.SCFG, initial map[string]int) ([]string, error) {
	state := make(map[string]int, len(initial))
	for k, v := range initial {
		state[k] = v
	}

	current, err := g.FindHead()
	if err != nil {
		return nil, err
	}
	var trace []string
	for {
		b, ok := g.Get(current)
		if !ok {
			return trace, scfgerr.InvariantViolationf("simulator stepped to an undefined block", current)
		}
		trace = append(trace, current)

		if b.Kind == scfg.BlockRegion {
			next, err := runRegion(b, state, &trace)
			if err != nil {
				return trace, err
			}
			if next == "" {
				return trace, nil
			}
			current = next
			continue
		}

		next, halt, err := step(b, state)
		if err != nil {
			return trace, err
		}
		if halt {
			return trace, nil
		}
		current = next
	}
}

// runRegion simulates entirely inside region's subregion, appending every
// visited block name to trace, until the subregion's exiting block
// resolves to a target outside the subregion. That target is returned as
// the region's external continuation (empty if the exiting block has no
// target at all, i.e. the program genuinely ends here).
func runRegion(region *scfg.Block, state map[string]int, trace *[]string) (string, error) {
	sub := region.Subregion
	current, err := sub.FindHead()
	if err != nil {
		return "", err
	}
	for {
		b, ok := sub.Get(current)
		if !ok {
			return "", scfgerr.InvariantViolationf("simulator stepped to an undefined block within a region", current)
		}
		*trace = append(*trace, current)

		if b.Kind == scfg.BlockRegion {
			next, err := runRegion(b, state, trace)
			if err != nil {
				return "", err
			}
			if next == "" {
				return "", nil
			}
			if _, inside := sub.Get(next); !inside {
				return next, nil
			}
			current = next
			continue
		}

		next, halt, err := step(b, state)
		if err != nil {
			return "", err
		}
		if halt {
			return "", nil
		}
		if _, inside := sub.Get(next); inside {
			current = next
			continue
		}
		return next, nil
	}
}

func step(b *scfg.Block, state map[string]int) (next string, halt bool, err error) {
	switch b.Kind {
	case scfg.BlockSyntheticAssignment:
		for _, a := range b.Assignments {
			state[a.Variable] = a.Value
		}
		jt := b.JumpTargets()
		if len(jt) == 0 {
			return "", true, nil
		}
		return jt[0], false, nil

	case scfg.BlockSyntheticHead, scfg.BlockSyntheticExitingLatch, scfg.BlockSyntheticExitBranch:
		val, ok := state[b.Variable]
		if !ok {
			return "", false, scfgerr.InvariantViolationf("control variable read before assignment", b.Variable)
		}
		for _, c := range b.Cases {
			if c.Value == val {
				return c.Target, false, nil
			}
		}
		return "", false, scfgerr.InvariantViolationf("no branch case matches control variable value", b.Name())

	default:
		jt := b.JumpTargets()
		if len(jt) == 0 {
			return "", true, nil
		}
		if len(jt) > 1 {
			return "", false, scfgerr.InvariantViolationf("non-branching block has more than one jump target", b.Name())
		}
		return jt[0], false, nil
	}
}
