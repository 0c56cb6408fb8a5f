package scfg

import "scfg/scfgerr"

func newBareSCFG(gen *NameGenerator) *SCFG {
	return &SCFG{graph: make(map[string]*Block), nameGen: gen}
}

// ExtractRegion wraps regionBlocks as a single RegionBlock of the given
// kind (C9). It computes the region's header and entries itself via
// FindHeadersAndEntries, so the caller need not already know which member
// is the header; this is the form branch restructuring uses, where a
// dominance-computed set of blocks is wrapped after the fact.
func (s *SCFG) ExtractRegion(regionBlocks []string, regionKind string) (string, error) {
	headers, entries, err := s.FindHeadersAndEntries(regionBlocks)
	if err != nil {
		return "", err
	}
	return s.wrapComputed(headers, entries, regionBlocks, regionKind)
}

// WrapRegion wraps regionBlocks as a single RegionBlock of the given kind,
// asserting the region's header is known to equal knownHeader. Loop
// restructuring uses this form: the loop's header is already known from
// the loop restructuring step that prepared it, so the recomputed header is
// checked against it rather than trusted blindly.
func (s *SCFG) WrapRegion(knownHeader string, regionBlocks []string, regionKind string) (string, error) {
	headers, entries, err := s.FindHeadersAndEntries(regionBlocks)
	if err != nil {
		return "", err
	}
	if len(headers) != 1 || headers[0] != knownHeader {
		return "", scfgerr.InvariantViolationf("computed region header does not match expected loop header", knownHeader)
	}
	return s.wrapComputed(headers, entries, regionBlocks, regionKind)
}

func (s *SCFG) wrapComputed(headers, entries, regionBlocks []string, regionKind string) (string, error) {
	if len(headers) != 1 {
		return "", scfgerr.InvariantViolationf("region must have exactly one header", headers...)
	}
	exitingBlocks, exitBlocks := s.FindExitingAndExits(regionBlocks)
	if len(exitingBlocks) != 1 {
		return "", scfgerr.InvariantViolationf("region must have exactly one exiting block", exitingBlocks...)
	}
	header := headers[0]
	exiting := exitingBlocks[0]

	regionName := s.nameGen.NewRegionName(regionKind)
	subregion := newBareSCFG(s.nameGen)
	for _, name := range regionBlocks {
		subregion.Put(s.Pop(name))
	}

	regionBlock := NewRegionBlock(regionName, regionKind, header, subregion, exiting, exitBlocks...)
	subregion.SetRegion(regionBlock)
	regionBlock.SetParentRegion(s.region)
	for _, name := range subregion.Names() {
		member := subregion.MustGet(name)
		if member.Kind == BlockRegion {
			member.SetParentRegion(regionBlock)
		}
	}

	for _, entryName := range entries {
		entryBlock := s.MustGet(entryName)
		raw := entryBlock.JumpTargets()
		changed := false
		rewritten := make([]string, len(raw))
		for i, t := range raw {
			if t == header {
				rewritten[i] = regionName
				changed = true
			} else {
				rewritten[i] = t
			}
		}
		if !changed {
			continue
		}
		nb := entryBlock.ReplaceJumpTargets(rewritten)
		for _, be := range entryBlock.Backedges() {
			if be == header {
				nb = nb.RetargetBackedge(header, regionName)
			}
		}
		s.Put(nb)
	}

	if err := s.Add(regionBlock); err != nil {
		return "", err
	}
	return regionName, nil
}
