// Package pyblock stands in for the bytecode/AST front end the original
// engine ships (PythonBytecodeBlock, PythonASTBlock): it produces payload
// blocks carrying an opaque [begin, end) range the engine never inspects.
// It is not a disassembler or parser — callers supply the range.
package pyblock

import "scfg"

// NewPayload returns a payload block named name, covering [begin, end) of
// whatever source unit the caller is modeling (bytecode offsets, AST
// statement indices), with the given jump targets.
func NewPayload(name string, begin, end int, jumpTargets ...string) *scfg.Block {
	return scfg.NewPayloadBlock(name, begin, end, jumpTargets...)
}
