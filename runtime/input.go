package tbruntime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gosuda/tinybasic/ast"
)

// execInput assigns the variables one at a time. When input runs out part
// way through, the earlier assignments stay.
func (vm *VM) execInput(s ast.InputStmt) error {
	for _, name := range s.Vars {
		vm.emitOutput(Output{Text: Prompt})
		raw, ok, err := vm.readInput()
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if !ok {
			return ErrNeedsInput
		}
		n, ok := parseIntInput(raw)
		if !ok {
			return fmt.Errorf("%w: %q", ErrNotInteger, raw)
		}
		vm.vars[name] = Int(n)
	}
	return nil
}

// readInput drains queued lines before asking the provider.
func (vm *VM) readInput() (string, bool, error) {
	if len(vm.queue) > 0 {
		v := vm.queue[0]
		vm.queue = vm.queue[1:]
		return v, true, nil
	}
	if vm.inputProvider == nil {
		return "", false, nil
	}
	return vm.inputProvider()
}

func parseIntInput(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
