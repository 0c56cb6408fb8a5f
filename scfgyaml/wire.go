// Package scfgyaml implements the textual and binary codecs for *scfg.SCFG:
// YAML (mirroring the original engine's own SCFGIO, which is built on
// Python's yaml module), a map[string]any dict form, and a compact msgpack
// binary form.
package scfgyaml

import "scfg"

// wireSCFG is the serializable shape of an SCFG: just its block map. The
// owning RegionBlock (the "meta" wrapper every SCFG carries) is not
// serialized; it is recreated fresh by scfg.NewSCFGWithNameGen on decode.
type wireSCFG struct {
	Blocks map[string]*wireBlock `yaml:"blocks" msgpack:"blocks"`
}

type wireAssignment struct {
	Variable string `yaml:"variable" msgpack:"variable"`
	Value    int    `yaml:"value" msgpack:"value"`
}

type wireCase struct {
	Value  int    `yaml:"value" msgpack:"value"`
	Target string `yaml:"target" msgpack:"target"`
}

// wireBlock is the serializable shape of a scfg.Block. Kind discriminates
// which of the other fields are populated, mirroring the tagged-union
// encoding the original engine's SCFGIO uses: "type" names the variant,
// "jt" carries the ordered jump targets, and "be" carries any backedges.
type wireBlock struct {
	Kind      string           `yaml:"type" msgpack:"type"`
	Targets   []string         `yaml:"jt,omitempty" msgpack:"jt,omitempty"`
	Backedges []string         `yaml:"be,omitempty" msgpack:"be,omitempty"`
	Begin     int              `yaml:"begin,omitempty" msgpack:"begin,omitempty"`
	End       int              `yaml:"end,omitempty" msgpack:"end,omitempty"`
	Assign    []wireAssignment `yaml:"assignments,omitempty" msgpack:"assignments,omitempty"`
	Variable  string           `yaml:"variable,omitempty" msgpack:"variable,omitempty"`
	Cases     []wireCase       `yaml:"cases,omitempty" msgpack:"cases,omitempty"`

	RegionKind string    `yaml:"region_kind,omitempty" msgpack:"region_kind,omitempty"`
	Header     string    `yaml:"header,omitempty" msgpack:"header,omitempty"`
	Exiting    string    `yaml:"exiting,omitempty" msgpack:"exiting,omitempty"`
	Subregion  *wireSCFG `yaml:"subregion,omitempty" msgpack:"subregion,omitempty"`
}

func encodeSCFG(s *scfg.SCFG) *wireSCFG {
	out := &wireSCFG{Blocks: make(map[string]*wireBlock, s.Len())}
	for _, name := range s.Names() {
		out.Blocks[name] = encodeBlock(s.MustGet(name))
	}
	return out
}

func encodeBlock(b *scfg.Block) *wireBlock {
	w := &wireBlock{
		Kind:      string(b.Kind),
		Targets:   b.JumpTargets(),
		Backedges: b.Backedges(),
	}
	switch b.Kind {
	case scfg.BlockPayload:
		w.Begin, w.End = b.Begin, b.End
	case scfg.BlockSyntheticAssignment:
		for _, a := range b.Assignments {
			w.Assign = append(w.Assign, wireAssignment{Variable: a.Variable, Value: a.Value})
		}
	case scfg.BlockSyntheticHead, scfg.BlockSyntheticExitingLatch, scfg.BlockSyntheticExitBranch:
		w.Variable = b.Variable
		for _, c := range b.Cases {
			w.Cases = append(w.Cases, wireCase{Value: c.Value, Target: c.Target})
		}
	case scfg.BlockRegion:
		w.RegionKind = b.RegionKind
		w.Header = b.Header
		w.Exiting = b.Exiting
		w.Subregion = encodeSCFG(b.Subregion)
	}
	return w
}

func decodeSCFG(w *wireSCFG, gen *scfg.NameGenerator) (*scfg.SCFG, error) {
	s := scfg.NewSCFGWithNameGen(gen)
	for name, wb := range w.Blocks {
		b, err := decodeBlock(name, wb, gen)
		if err != nil {
			return nil, err
		}
		if err := s.Add(b); err != nil {
			return nil, err
		}
	}

	region := s.Region()
	for _, name := range s.Names() {
		b := s.MustGet(name)
		if b.Kind == scfg.BlockRegion {
			b.Subregion.SetRegion(b)
			b.SetParentRegion(region)
			for _, memberName := range b.Subregion.Names() {
				member := b.Subregion.MustGet(memberName)
				if member.Kind == scfg.BlockRegion {
					member.SetParentRegion(b)
				}
			}
		}
	}
	return s, nil
}

func decodeBlock(name string, w *wireBlock, gen *scfg.NameGenerator) (*scfg.Block, error) {
	kind := scfg.BlockKind(w.Kind)
	var b *scfg.Block
	switch kind {
	case scfg.BlockPayload:
		b = scfg.NewPayloadBlock(name, w.Begin, w.End, w.Targets...)
	case scfg.BlockSyntheticAssignment:
		var target string
		if len(w.Targets) > 0 {
			target = w.Targets[0]
		}
		assignments := make([]scfg.VarAssignment, len(w.Assign))
		for i, a := range w.Assign {
			assignments[i] = scfg.VarAssignment{Variable: a.Variable, Value: a.Value}
		}
		b = scfg.NewSyntheticAssignment(name, target, assignments)
	case scfg.BlockSyntheticHead, scfg.BlockSyntheticExitingLatch, scfg.BlockSyntheticExitBranch:
		cases := make([]scfg.BranchCase, len(w.Cases))
		for i, c := range w.Cases {
			cases[i] = scfg.BranchCase{Value: c.Value, Target: c.Target}
		}
		b = scfg.NewSyntheticBranch(kind, name, w.Variable, cases, w.Targets...)
	case scfg.BlockRegion:
		sub, err := decodeSCFG(w.Subregion, gen)
		if err != nil {
			return nil, err
		}
		b = scfg.NewRegionBlock(name, w.RegionKind, w.Header, sub, w.Exiting, w.Targets...)
	case scfg.BlockBasic:
		b = scfg.NewBasicBlock(name, w.Targets...)
	default:
		b = scfg.NewSyntheticBlock(kind, name, w.Targets...)
	}
	for _, be := range w.Backedges {
		var err error
		b, err = b.ReplaceBackedge(be)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}
