// Package restructure implements loop and branch restructuring (Bahmann
// 2015, sections 4.1 and 4.2): the passes that turn an arbitrary reducible
// control-flow graph into a single-entry-single-exit region tree, operating
// one region at a time from the outermost region inward.
package restructure

import (
	"sort"

	"scfg"
	"scfg/scfgerr"
)

type edgeSet map[string]map[string]bool

func (e edgeSet) add(k, v string) {
	if e[k] == nil {
		e[k] = map[string]bool{}
	}
	e[k][v] = true
}

// domSets computes, for every node, its set of dominators: the nodes that
// every path from an entry to it must pass through. Ported from the
// worklist algorithm used by the engine this package is based on, itself
// taken from Numba's flow-graph analysis.
func domSets(graph map[string]*scfg.Block) map[string]map[string]bool {
	preds := edgeSet{}
	succs := edgeSet{}
	for src, node := range graph {
		for _, dst := range node.JumpTargets() {
			if _, ok := graph[dst]; !ok {
				continue
			}
			preds.add(dst, src)
			succs.add(src, dst)
		}
	}
	var entries []string
	for k := range graph {
		if len(preds[k]) == 0 {
			entries = append(entries, k)
		}
	}
	return findDominatorsInternal(entries, sortedNames(graph), preds, succs)
}

// postDomSets computes, for every node, its set of post-dominators: the
// nodes every path from it to an exit must pass through.
func postDomSets(graph map[string]*scfg.Block) map[string]map[string]bool {
	var entries []string
	for k, v := range graph {
		hasInside := false
		for _, t := range v.JumpTargets() {
			if _, ok := graph[t]; ok {
				hasInside = true
				break
			}
		}
		if !hasInside {
			entries = append(entries, k)
		}
	}
	preds := edgeSet{}
	succs := edgeSet{}
	for src, node := range graph {
		for _, dst := range node.JumpTargets() {
			if _, ok := graph[dst]; !ok {
				continue
			}
			preds.add(src, dst)
			succs.add(dst, src)
		}
	}
	return findDominatorsInternal(entries, sortedNames(graph), preds, succs)
}

func findDominatorsInternal(entries, nodes []string, preds, succs edgeSet) map[string]map[string]bool {
	if len(entries) == 0 {
		panic(scfgerr.InvariantViolationf("dominator computation has no entry points"))
	}
	entrySet := map[string]bool{}
	for _, e := range entries {
		entrySet[e] = true
	}
	allNodes := map[string]bool{}
	for _, n := range nodes {
		allNodes[n] = true
	}

	doms := map[string]map[string]bool{}
	for _, e := range entries {
		doms[e] = map[string]bool{e: true}
	}
	var todo []string
	for _, n := range nodes {
		if !entrySet[n] {
			doms[n] = cloneSet(allNodes)
			todo = append(todo, n)
		}
	}

	for len(todo) > 0 {
		n := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if entrySet[n] {
			continue
		}
		var newDoms map[string]bool
		first := true
		for p := range preds[n] {
			if first {
				newDoms = cloneSet(doms[p])
				first = false
				continue
			}
			newDoms = intersectSet(newDoms, doms[p])
		}
		if newDoms == nil {
			newDoms = map[string]bool{}
		}
		newDoms[n] = true
		if !setEqual(newDoms, doms[n]) {
			doms[n] = newDoms
			for s := range succs[n] {
				todo = append(todo, s)
			}
		}
	}
	return doms
}

// immediateDoms reduces a dominator-set map to an immediate-dominator map
// by repeatedly stripping each node's dominators' own dominators out of its
// set, until only the immediate dominator remains.
func immediateDoms(doms map[string]map[string]bool) map[string]string {
	idoms := map[string]map[string]bool{}
	for k, vs := range doms {
		stripped := map[string]bool{}
		for v := range vs {
			if v != k {
				stripped[v] = true
			}
		}
		idoms[k] = stripped
	}
	changed := true
	for changed {
		changed = false
		for k, vs := range idoms {
			nstart := len(vs)
			for v := range cloneSet(vs) {
				for other := range idoms[v] {
					delete(vs, other)
				}
			}
			if len(vs) < nstart {
				changed = true
			}
			idoms[k] = vs
		}
	}
	out := map[string]string{}
	for k, vs := range idoms {
		if len(vs) == 1 {
			for v := range vs {
				out[k] = v
			}
		}
	}
	return out
}

func cloneSet(s map[string]bool) map[string]bool {
	out := make(map[string]bool, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

func intersectSet(a, b map[string]bool) map[string]bool {
	out := map[string]bool{}
	for k := range a {
		if b[k] {
			out[k] = true
		}
	}
	return out
}

func setEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func sortedNames(graph map[string]*scfg.Block) []string {
	out := make([]string, 0, len(graph))
	for n := range graph {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func sortedSetKeys(s map[string]bool) []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
