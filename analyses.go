package scfg

import (
	"fmt"
	"sort"

	"scfg/scfgerr"
)

// FindHead returns the name of the unique block with no predecessor within
// the graph. It requires the graph to be closed (join_returns has run, or
// the caller otherwise knows there is exactly one entry); it returns a
// MalformedInput error naming the candidates when zero or more than one is
// found.
func (s *SCFG) FindHead() (string, error) {
	heads := s.headCandidates()
	if len(heads) != 1 {
		return "", scfgerr.MalformedInputf(fmt.Sprintf("expected exactly one head, found %d", len(heads)), heads...)
	}
	return heads[0], nil
}

// ComputeSCC computes the strongly connected components of the whole
// graph using Tarjan's algorithm, treating backedges as ordinary edges.
// Each returned component is sorted by name; callers that must process
// several components deterministically further sort the outer slice by
// each component's lexicographically smallest member.
func (s *SCFG) ComputeSCC() [][]string {
	return s.ComputeSCCSubgraph(s.Names())
}

// ComputeSCCSubgraph computes the strongly connected components of the
// subgraph induced by nodes.
func (s *SCFG) ComputeSCCSubgraph(nodes []string) [][]string {
	inSubgraph := toSet(nodes)

	index := 0
	indices := make(map[string]int, len(nodes))
	lowlink := make(map[string]int, len(nodes))
	onStack := make(map[string]bool, len(nodes))
	var stack []string
	var result [][]string

	var strongConnect func(v string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		block, ok := s.graph[v]
		if ok {
			for _, w := range block.JumpTargets() {
				if !inSubgraph[w] {
					continue
				}
				if _, seen := indices[w]; !seen {
					strongConnect(w)
					if lowlink[w] < lowlink[v] {
						lowlink[v] = lowlink[w]
					}
				} else if onStack[w] {
					if indices[w] < lowlink[v] {
						lowlink[v] = indices[w]
					}
				}
			}
		}

		if lowlink[v] == indices[v] {
			var comp []string
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			sort.Strings(comp)
			result = append(result, comp)
		}
	}

	sorted := append([]string(nil), nodes...)
	sort.Strings(sorted)
	for _, v := range sorted {
		if _, seen := indices[v]; !seen {
			strongConnect(v)
		}
	}
	return result
}

// FindHeadersAndEntries finds headers and entries of subgraph. Headers are
// members of subgraph with at least one predecessor outside it; entries
// are blocks outside subgraph with at least one edge into a header. When
// subgraph has no header reachable from within the current graph (e.g. the
// subgraph is the whole graph), the single header defaults to FindHead,
// and entries are resolved by recursing into the parent region, mirroring
// the reference engine's fallback.
func (s *SCFG) FindHeadersAndEntries(subgraph []string) ([]string, []string, error) {
	inSub := toSet(subgraph)
	headers := map[string]bool{}
	entries := map[string]bool{}

	for _, outside := range s.ExcludeBlocks(inSub) {
		block := s.graph[outside]
		jumpedIn := false
		for _, jt := range block.JumpTargets() {
			if inSub[jt] {
				headers[jt] = true
				jumpedIn = true
			}
		}
		if jumpedIn {
			entries[outside] = true
		}
	}

	if len(headers) == 0 {
		head, err := s.FindHead()
		if err != nil {
			return nil, nil, err
		}
		headers[head] = true
		if s.region.RegionKind != RegionMeta {
			parent := s.region.ParentRegion
			if parent == nil || parent.Subregion == nil {
				return nil, nil, scfgerr.InvariantViolationf("region missing parent subregion", s.region.Name())
			}
			_, parentEntries, err := parent.Subregion.FindHeadersAndEntries(stringSet{s.region.Name(): true}.keys())
			if err != nil {
				return nil, nil, err
			}
			return sortedKeys(headers), parentEntries, nil
		}
	}
	return sortedKeys(headers), sortedKeys(entries), nil
}

// FindExitingAndExits finds exiting and exit blocks of subgraph. Exiting
// blocks are members of subgraph with at least one successor outside it
// (or with no effective successor at all, i.e. a dead end); exits are
// blocks outside subgraph reached from an exiting block.
func (s *SCFG) FindExitingAndExits(subgraph []string) ([]string, []string) {
	exiting := map[string]bool{}
	exits := map[string]bool{}
	inSub := toSet(subgraph)
	for _, inside := range subgraph {
		block := s.graph[inside]
		for _, jt := range block.JumpTargets() {
			if !inSub[jt] {
				exiting[inside] = true
				exits[jt] = true
			}
		}
		if block.IsExiting() {
			exiting[inside] = true
		}
	}
	return sortedKeys(exiting), sortedKeys(exits)
}

// IsReachableDFS reports whether end is reachable from begin by following
// effective (non-backedge) jump targets.
func (s *SCFG) IsReachableDFS(begin, end string) bool {
	startBlock, ok := s.graph[begin]
	if !ok {
		return false
	}
	seen := map[string]bool{}
	toVisit := append([]string(nil), startBlock.EffectiveJumpTargets()...)
	for len(toVisit) > 0 {
		n := len(toVisit) - 1
		block := toVisit[n]
		toVisit = toVisit[:n]
		if block == end {
			return true
		}
		if seen[block] {
			continue
		}
		seen[block] = true
		if b, ok := s.graph[block]; ok {
			toVisit = append(toVisit, b.EffectiveJumpTargets()...)
		}
	}
	return false
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

type stringSet map[string]bool

func (m stringSet) keys() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
