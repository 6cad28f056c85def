package tbruntime

import (
	"errors"
	"fmt"

	"github.com/gosuda/tinybasic/ast"
)

type directiveKind int

const (
	directiveContinue directiveKind = iota
	directiveJump
	directiveReturn
	directiveHalt
)

// directive tells the runner where to go after a statement. line is the
// jump target for directiveJump and the GOSUB call site for
// directiveReturn.
type directive struct {
	kind directiveKind
	line int
}

type RunStatus int

const (
	// StatusCompleted means execution fell off the last line.
	StatusCompleted RunStatus = iota
	// StatusEnded means an END statement stopped execution.
	StatusEnded
	// StatusSuspended means INPUT ran out of lines; Result.Snapshot holds
	// the state needed to continue.
	StatusSuspended
	// StatusFailed accompanies the *RuntimeError that halted the run.
	StatusFailed
)

func (s RunStatus) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusEnded:
		return "ended"
	case StatusSuspended:
		return "suspended"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type Result struct {
	Status   RunStatus
	Outputs  []Output
	Snapshot *Snapshot
}

// Run executes the program from its first line, or from the pending resume
// point left by LoadSnapshot or an earlier suspension. A runtime error
// halts the run and is returned as a *RuntimeError.
func (vm *VM) Run() (Result, error) {
	vm.outputs = vm.outputs[:0]
	current := vm.pc
	if !vm.resume {
		first, ok := vm.store.First()
		if !ok {
			return Result{Status: StatusFailed}, &RuntimeError{Err: ErrEmptyProgram}
		}
		current = first
	}
	vm.resume = false
	from, fromStmt := 0, ast.Statement(nil)
	for {
		vm.pc = current
		stmt, ok := vm.store.Get(current)
		if !ok {
			// Report the jump that named the missing line.
			rerr := &RuntimeError{Line: from, Err: fmt.Errorf("%w: %d", ErrLineNotFound, current)}
			if fromStmt != nil {
				rerr.Stmt = ast.Format(fromStmt)
			}
			return vm.result(StatusFailed), rerr
		}
		if vm.traceHook != nil {
			vm.traceHook(current, stmt)
		}
		d, err := vm.runStatement(current, stmt)
		if err != nil {
			if errors.Is(err, ErrNeedsInput) {
				vm.resume = true
				res := vm.result(StatusSuspended)
				res.Snapshot = vm.Snapshot()
				return res, nil
			}
			return vm.result(StatusFailed), &RuntimeError{Line: current, Stmt: ast.Format(stmt), Err: err}
		}
		next, status, done := vm.resolve(current, d)
		if done {
			vm.pc = 0
			return vm.result(status), nil
		}
		if d.kind == directiveJump {
			from, fromStmt = current, stmt
		}
		current = next
	}
}

// resolve maps a directive issued at line current to the next line. done is
// true when the run is over.
func (vm *VM) resolve(current int, d directive) (next int, status RunStatus, done bool) {
	switch d.kind {
	case directiveJump:
		return d.line, StatusCompleted, false
	case directiveReturn:
		current = d.line
	case directiveHalt:
		return 0, StatusEnded, true
	}
	next, ok := vm.store.Next(current)
	if !ok {
		return 0, StatusCompleted, true
	}
	return next, StatusCompleted, false
}

func (vm *VM) result(status RunStatus) Result {
	res := Result{Status: status}
	if vm.outputHook == nil {
		res.Outputs = append([]Output(nil), vm.outputs...)
	}
	return res
}
