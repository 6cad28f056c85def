package tbruntime

import (
	"fmt"
	"math"

	"github.com/gosuda/tinybasic/ast"
)

func (vm *VM) runStatement(line int, stmt ast.Statement) (directive, error) {
	switch s := stmt.(type) {
	case ast.LetStmt:
		v, err := vm.evalExpr(s.Expr)
		if err != nil {
			return directive{}, err
		}
		if err := vm.SetVar(s.Var, v); err != nil {
			return directive{}, err
		}
		return directive{kind: directiveContinue}, nil
	case ast.PrintStmt:
		if err := vm.execPrint(s); err != nil {
			return directive{}, err
		}
		return directive{kind: directiveContinue}, nil
	case ast.InputStmt:
		if err := vm.execInput(s); err != nil {
			return directive{}, err
		}
		return directive{kind: directiveContinue}, nil
	case ast.IfStmt:
		cond, err := vm.evalExpr(s.Cond)
		if err != nil {
			return directive{}, err
		}
		if !cond.Truthy() {
			return directive{kind: directiveContinue}, nil
		}
		return vm.runStatement(line, s.Then)
	case ast.GotoStmt:
		target, err := vm.evalLineTarget(s.Target)
		if err != nil {
			return directive{}, err
		}
		return directive{kind: directiveJump, line: target}, nil
	case ast.GosubStmt:
		target, err := vm.evalLineTarget(s.Target)
		if err != nil {
			return directive{}, err
		}
		vm.stack = append(vm.stack, s.Line)
		return directive{kind: directiveJump, line: target}, nil
	case ast.ReturnStmt:
		if len(vm.stack) == 0 {
			return directive{}, ErrReturnWithoutGosub
		}
		site := vm.stack[len(vm.stack)-1]
		vm.stack = vm.stack[:len(vm.stack)-1]
		return directive{kind: directiveReturn, line: site}, nil
	case ast.EndStmt:
		return directive{kind: directiveHalt}, nil
	case ast.RemStmt:
		return directive{kind: directiveContinue}, nil
	default:
		return directive{}, fmt.Errorf("unsupported statement %T", stmt)
	}
}

// evalLineTarget evaluates a GOTO/GOSUB target, which must be integral.
func (vm *VM) evalLineTarget(e ast.Expr) (int, error) {
	v, err := vm.evalExpr(e)
	if err != nil {
		return 0, err
	}
	switch v.Kind() {
	case IntKind:
		return int(v.Int64()), nil
	case FloatKind:
		f := v.Float64()
		if f != math.Trunc(f) || !fitsInt64(f) {
			return 0, fmt.Errorf("%w: %s", ErrBadLineNumber, v)
		}
		return int(f), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrBadLineNumber, v)
	}
}
