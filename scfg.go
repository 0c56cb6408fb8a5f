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

import (
	"iter"
	"sort"

	"scfg/scfgerr"
)

// SCFG is a mapping from name to Block, plus the name generator shared by
// every region nested within it. It is the graph container described as
// C3 in the restructuring engine's design: mutation happens through
// explicit Add/Remove/Put, never through direct field assignment on a
// Block.
type SCFG struct {
	graph   map[string]*Block
	nameGen *NameGenerator

	// region is the RegionBlock that owns this SCFG as its Subregion.
	// For the outermost graph, this is a synthetic "meta" region with no
	// parent. It is used by FindHeadersAndEntries to walk up the region
	// hierarchy when a subgraph has no internal header of its own.
	region *Block
}

// NewSCFG returns an empty graph, wrapped in its own synthetic meta
// region, with a fresh name generator.
func NewSCFG() *SCFG {
	return newSCFGWithGen(NewNameGenerator())
}

// NewSCFGWithNameGen returns an empty graph, wrapped in its own synthetic
// meta region, sharing the given name generator. Codecs (scfgyaml) use
// this to rebuild a region tree whose nested subregions must draw fresh
// names from the same counters as their siblings.
func NewSCFGWithNameGen(gen *NameGenerator) *SCFG {
	return newSCFGWithGen(gen)
}

func newSCFGWithGen(gen *NameGenerator) *SCFG {
	s := &SCFG{graph: make(map[string]*Block), nameGen: gen}
	name := gen.NewRegionName(RegionMeta)
	s.region = NewRegionBlock(name, RegionMeta, "", s, "")
	return s
}

// NameGen returns the name generator shared across this SCFG and every
// subregion nested within it.
func (s *SCFG) NameGen() *NameGenerator { return s.nameGen }

// Region returns the RegionBlock that owns this SCFG as its subregion.
func (s *SCFG) Region() *Block { return s.region }

// SetRegion rebinds the RegionBlock that owns this SCFG. Called when a
// subgraph is extracted into a freshly created region.
func (s *SCFG) SetRegion(region *Block) { s.region = region }

// Get returns the block named name, or false if absent.
func (s *SCFG) Get(name string) (*Block, bool) {
	b, ok := s.graph[name]
	return b, ok
}

// MustGet returns the block named name, panicking if it is absent. Callers
// within the engine use this once a name is known, by construction, to be
// present; an absent block at that point is an engine bug.
func (s *SCFG) MustGet(name string) *Block {
	b, ok := s.graph[name]
	if !ok {
		panic(scfgerr.InvariantViolationf("expected block to be present", name))
	}
	return b
}

// Contains reports whether name is present in the graph.
func (s *SCFG) Contains(name string) bool {
	_, ok := s.graph[name]
	return ok
}

// Len returns the number of blocks in the graph.
func (s *SCFG) Len() int { return len(s.graph) }

// Graph returns the live, mutable name-to-block map backing this SCFG.
// Callers (principally the restructure package) that need to pop, insert,
// or replace several blocks as one atomic edit use this directly, the same
// way the reference engine treats its graph dictionary as a public
// attribute; callers are responsible for preserving SCFG's invariants.
func (s *SCFG) Graph() map[string]*Block { return s.graph }

// Names returns the block names present in the graph, sorted.
func (s *SCFG) Names() []string {
	out := make([]string, 0, len(s.graph))
	for n := range s.graph {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Add inserts b into the graph. It returns a MalformedInput error if a
// block with the same name is already present.
func (s *SCFG) Add(b *Block) error {
	if _, exists := s.graph[b.Name()]; exists {
		return scfgerr.MalformedInputf("duplicate block name", b.Name())
	}
	s.graph[b.Name()] = b
	return nil
}

// Put inserts or replaces the block named b.Name(). Unlike Add, an
// existing block with the same name is silently overwritten; this is how
// structural edits (pop, modify, re-add) are expressed throughout the
// engine.
func (s *SCFG) Put(b *Block) { s.graph[b.Name()] = b }

// Pop removes and returns the block named name. It panics if name is
// absent, matching the reference engine's use of dict.pop on a name it
// has just observed to be present.
func (s *SCFG) Pop(name string) *Block {
	b, ok := s.graph[name]
	if !ok {
		panic(scfgerr.InvariantViolationf("cannot pop absent block", name))
	}
	delete(s.graph, name)
	return b
}

// Remove deletes the named blocks from the graph. Callers must have
// already retargeted any incoming edges; Remove does not rewrite jump
// targets.
func (s *SCFG) Remove(names ...string) {
	for _, n := range names {
		delete(s.graph, n)
	}
}

// All iterates the graph breadth-first from the head, in jump-target
// declaration order, descending into every RegionBlock's subregion and
// flattening its contents into the same traversal. Blocks unreachable from
// the head are not yielded.
func (s *SCFG) All() iter.Seq2[string, *Block] {
	return func(yield func(string, *Block) bool) {
		start, err := s.FindHead()
		if err != nil {
			start = "0"
		}
		seen := make(map[string]bool)
		toVisit := []string{start}
		for len(toVisit) > 0 {
			name := toVisit[0]
			toVisit = toVisit[1:]
			if seen[name] {
				continue
			}
			seen[name] = true
			b, ok := s.graph[name]
			if !ok {
				continue
			}
			if !yield(name, b) {
				return
			}
			if b.Kind == BlockRegion && b.Subregion != nil {
				for n2, b2 := range b.Subregion.All() {
					if !yield(n2, b2) {
						return
					}
				}
			}
			toVisit = append(toVisit, b.JumpTargets()...)
		}
	}
}

// ConcealedRegionView iterates the graph breadth-first from the head,
// exactly like All, except that it treats every RegionBlock as an opaque
// single node and does not descend into its subregion.
func (s *SCFG) ConcealedRegionView() iter.Seq2[string, *Block] {
	return func(yield func(string, *Block) bool) {
		start, err := s.FindHead()
		if err != nil {
			return
		}
		seen := make(map[string]bool)
		toVisit := []string{start}
		for len(toVisit) > 0 {
			name := toVisit[0]
			toVisit = toVisit[1:]
			if seen[name] {
				continue
			}
			seen[name] = true
			b, ok := s.graph[name]
			if !ok {
				continue
			}
			if !yield(name, b) {
				return
			}
			toVisit = append(toVisit, b.JumpTargets()...)
		}
	}
}

// ExcludeBlocks returns the graph's block names, sorted, with members of
// exclude omitted.
func (s *SCFG) ExcludeBlocks(exclude map[string]bool) []string {
	out := make([]string, 0, len(s.graph))
	for n := range s.graph {
		if !exclude[n] {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// IterSubregions yields every RegionBlock nested anywhere within this
// graph, recursively, in depth-first pre-order: each level's blocks are
// visited sorted by name, and a region's own nested regions are yielded
// right after it.
func (s *SCFG) IterSubregions(yield func(*Block) bool) {
	for _, name := range s.Names() {
		b := s.graph[name]
		if b.Kind != BlockRegion {
			continue
		}
		if !yield(b) {
			return
		}
		if b.Subregion != nil {
			cont := true
			b.Subregion.IterSubregions(func(r *Block) bool {
				cont = yield(r)
				return cont
			})
			if !cont {
				return
			}
		}
	}
}
