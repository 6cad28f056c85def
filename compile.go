package tinybasic

import (
	"github.com/gosuda/tinybasic/ast"
	"github.com/gosuda/tinybasic/parser"
	tbruntime "github.com/gosuda/tinybasic/runtime"
)

// Compile parses a whole program text and builds a VM holding it.
func Compile(source string) (*tbruntime.VM, error) {
	lines, err := parser.ParseProgram(source)
	if err != nil {
		return nil, err
	}
	return tbruntime.NewWithLines(lines), nil
}

// Parse only returns the numbered lines for tooling use.
func Parse(source string) ([]ast.Line, error) {
	return parser.ParseProgram(source)
}

// Resume builds a VM from a snapshot. The next Run continues at the
// snapshot's line.
func Resume(snap *tbruntime.Snapshot) (*tbruntime.VM, error) {
	vm := tbruntime.New()
	if err := vm.LoadSnapshot(snap); err != nil {
		return nil, err
	}
	return vm, nil
}
