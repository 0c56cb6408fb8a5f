package scfg

import "fmt"

// NameGenerator hands out process-unique, kind-stamped names for blocks,
// regions, and variables. Counters are keyed on the kind tag alone and are
// shared across NewBlockName, NewRegionName, and NewVarName, so callers that
// want reproducible names across several engine runs must recreate the
// generator rather than its counters.
type NameGenerator struct {
	kinds map[string]int
}

// NewNameGenerator returns a NameGenerator with all counters at zero.
func NewNameGenerator() *NameGenerator {
	return &NameGenerator{kinds: make(map[string]int)}
}

func (g *NameGenerator) next(kind string) int {
	idx := g.kinds[kind]
	g.kinds[kind] = idx + 1
	return idx
}

// NewBlockName returns a fresh name of the form "<kind>_block_<n>".
func (g *NameGenerator) NewBlockName(kind string) string {
	return fmt.Sprintf("%s_block_%d", kind, g.next(kind))
}

// NewRegionName returns a fresh name of the form "<kind>_region_<n>".
func (g *NameGenerator) NewRegionName(kind string) string {
	return fmt.Sprintf("%s_region_%d", kind, g.next(kind))
}

// NewVarName returns a fresh control-variable name of the form
// "__scfg_<kind>_var_<n>__".
func (g *NameGenerator) NewVarName(kind string) string {
	return fmt.Sprintf("__scfg_%s_var_%d__", kind, g.next(kind))
}
