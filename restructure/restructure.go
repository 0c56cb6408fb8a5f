package restructure

import "scfg"

// Restructure reduces root to a single-entry-single-exit region tree: it
// closes the graph to one exit (JoinReturns), then restructures loops and
// branches region by region, recursing into every region a pass creates
// until no flat (non-region) structure remains anywhere in the tree.
//
// This departs from a literal port of the reference engine's driver,
// which walks subregions with a single generator pass per transform and
// can miss loops or branches nested more than one level inside a region
// created by the same pass. Recursing into each freshly created region
// immediately, depth-first, avoids that gap.
func Restructure(root *scfg.SCFG) error {
	if err := root.JoinReturns(); err != nil {
		return err
	}
	return restructureRegion(root.Region())
}

func restructureRegion(region *scfg.Block) error {
	if err := RestructureLoop(region); err != nil {
		return err
	}
	if err := RestructureBranch(region); err != nil {
		return err
	}

	var children []*scfg.Block
	for _, name := range region.Subregion.Names() {
		member := region.Subregion.MustGet(name)
		if member.Kind == scfg.BlockRegion {
			children = append(children, member)
		}
	}
	for _, child := range children {
		if err := restructureRegion(child); err != nil {
			return err
		}
	}
	return nil
}
