package scfg

// Kind tags used with NameGenerator. The YAML/dict "type" field carries a
// BlockKind value instead. These mirror the tag vocabulary of the Bahmann-style restructuring engine
// this package implements.
const (
	KindPythonBytecode    = "python_bytecode"
	KindBasic             = "basic"
	KindSynthHead         = "synth_head"
	KindSynthExit         = "synth_exit"
	KindSynthFill         = "synth_fill"
	KindSynthAssign       = "synth_assign"
	KindSynthTail         = "synth_tail"
	KindSynthReturn       = "synth_return"
	KindSynthExitBranch   = "synth_exit_branch"
	KindSynthExitingLatch = "synth_exiting_latch"

	// Region kinds.
	RegionLoop   = "loop"
	RegionBranch = "branch"
	RegionMeta   = "meta"
)
