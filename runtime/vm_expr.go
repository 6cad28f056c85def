package tbruntime

import (
	"fmt"
	"math"

	"github.com/gosuda/tinybasic/ast"
)

func (vm *VM) evalExpr(e ast.Expr) (Value, error) {
	switch ex := e.(type) {
	case ast.NumberLit:
		if ex.IsFloat {
			return Float(ex.Float), nil
		}
		return Int(ex.Int), nil
	case ast.StringLit:
		return Str(ex.Value), nil
	case ast.VarRef:
		return vm.getVar(ex.Name), nil
	case ast.UnaryExpr:
		v, err := vm.evalExpr(ex.Expr)
		if err != nil {
			return Value{}, err
		}
		if !v.IsNumber() {
			return Value{}, fmt.Errorf("%w: unary %s on %s", ErrTypeMismatch, ex.Op, v.Kind())
		}
		switch ex.Op {
		case "+":
			return v, nil
		case "-":
			if v.Kind() == FloatKind {
				return Float(-v.Float64()), nil
			}
			if v.Int64() == math.MinInt64 {
				return Float(-v.Float64()), nil
			}
			return Int(-v.Int64()), nil
		default:
			return Value{}, fmt.Errorf("unsupported unary operator %q", ex.Op)
		}
	case ast.BinaryExpr:
		left, err := vm.evalExpr(ex.Left)
		if err != nil {
			return Value{}, err
		}
		right, err := vm.evalExpr(ex.Right)
		if err != nil {
			return Value{}, err
		}
		return evalBinary(ex.Op, left, right)
	case ast.CallExpr:
		return vm.evalCallExpr(ex)
	case ast.TabExpr:
		return vm.evalExpr(ex.Column)
	default:
		return Value{}, fmt.Errorf("unsupported expression %T", e)
	}
}

func (vm *VM) evalCallExpr(ex ast.CallExpr) (Value, error) {
	arg, err := vm.evalExpr(ex.Arg)
	if err != nil {
		return Value{}, err
	}
	if !arg.IsNumber() {
		return Value{}, fmt.Errorf("%w: %s of %s", ErrTypeMismatch, ex.Name, arg.Kind())
	}
	switch ex.Name {
	case "SQR":
		x := arg.Float64()
		if x < 0 {
			return Value{}, fmt.Errorf("%w: SQR(%s)", ErrDomain, arg)
		}
		return Float(math.Sqrt(x)), nil
	case "INT":
		if arg.Kind() == IntKind {
			return arg, nil
		}
		t := math.Trunc(arg.Float64())
		if !fitsInt64(t) {
			return Float(t), nil
		}
		return Int(int64(t)), nil
	case "ABS":
		if arg.Kind() == FloatKind {
			return Float(math.Abs(arg.Float64())), nil
		}
		n := arg.Int64()
		if n == math.MinInt64 {
			return Float(math.Abs(arg.Float64())), nil
		}
		if n < 0 {
			n = -n
		}
		return Int(n), nil
	case "RND":
		return Float(vm.rng.Float64()), nil
	default:
		return Value{}, fmt.Errorf("%w: %s", ErrUndefinedFunction, ex.Name)
	}
}

func evalBinary(op string, left, right Value) (Value, error) {
	if !left.IsNumber() || !right.IsNumber() {
		return Value{}, fmt.Errorf("%w: %s %s %s", ErrTypeMismatch, left.Kind(), op, right.Kind())
	}
	bothInt := left.Kind() == IntKind && right.Kind() == IntKind
	switch op {
	case "+":
		if bothInt {
			a, b := left.Int64(), right.Int64()
			if sum := a + b; (sum > a) == (b > 0) {
				return Int(sum), nil
			}
		}
		return Float(left.Float64() + right.Float64()), nil
	case "-":
		if bothInt {
			a, b := left.Int64(), right.Int64()
			if diff := a - b; (diff < a) == (b > 0) {
				return Int(diff), nil
			}
		}
		return Float(left.Float64() - right.Float64()), nil
	case "*":
		if bothInt {
			if p, ok := mulInt64(left.Int64(), right.Int64()); ok {
				return Int(p), nil
			}
		}
		return Float(left.Float64() * right.Float64()), nil
	case "/":
		if right.Float64() == 0 {
			return Value{}, ErrDivisionByZero
		}
		return Float(left.Float64() / right.Float64()), nil
	case "=", "<>", "<", "<=", ">", ">=":
		return Bool(compare(op, left, right)), nil
	default:
		return Value{}, fmt.Errorf("unsupported binary operator %q", op)
	}
}

func compare(op string, left, right Value) bool {
	if left.Kind() == IntKind && right.Kind() == IntKind {
		a, b := left.Int64(), right.Int64()
		switch op {
		case "=":
			return a == b
		case "<>":
			return a != b
		case "<":
			return a < b
		case "<=":
			return a <= b
		case ">":
			return a > b
		default:
			return a >= b
		}
	}
	a, b := left.Float64(), right.Float64()
	switch op {
	case "=":
		return a == b
	case "<>":
		return a != b
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	default:
		return a >= b
	}
}

// mulInt64 reports false when the product leaves the int64 range; the
// caller then promotes to float.
func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	p := a * b
	return p, p/b == a
}

// fitsInt64 reports whether an integral float converts to int64 exactly.
func fitsInt64(f float64) bool {
	return f >= -(1<<63) && f < 1<<63
}
