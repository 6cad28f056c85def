package tbruntime

import "strconv"

type ValueKind int

const (
	IntKind ValueKind = iota
	FloatKind
	BoolKind
	StringKind
)

func (k ValueKind) String() string {
	switch k {
	case IntKind:
		return "integer"
	case FloatKind:
		return "float"
	case BoolKind:
		return "boolean"
	case StringKind:
		return "string"
	default:
		return "unknown"
	}
}

type Value struct {
	kind ValueKind
	i    int64
	f    float64
	b    bool
	s    string
}

func Int(v int64) Value {
	return Value{kind: IntKind, i: v}
}

func Float(v float64) Value {
	return Value{kind: FloatKind, f: v}
}

func Bool(v bool) Value {
	return Value{kind: BoolKind, b: v}
}

func Str(v string) Value {
	return Value{kind: StringKind, s: v}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) IsNumber() bool {
	return v.kind == IntKind || v.kind == FloatKind
}

func (v Value) Int64() int64 {
	switch v.kind {
	case IntKind:
		return v.i
	case FloatKind:
		return int64(v.f)
	case BoolKind:
		if v.b {
			return 1
		}
	}
	return 0
}

func (v Value) Float64() float64 {
	if v.kind == FloatKind {
		return v.f
	}
	return float64(v.Int64())
}

func (v Value) Truthy() bool {
	switch v.kind {
	case BoolKind:
		return v.b
	case StringKind:
		return v.s != ""
	case FloatKind:
		return v.f != 0
	default:
		return v.i != 0
	}
}

// String renders a value the way PRINT shows it: floats always carry two
// fraction digits, integers none.
func (v Value) String() string {
	switch v.kind {
	case FloatKind:
		return strconv.FormatFloat(v.f, 'f', 2, 64)
	case BoolKind:
		if v.b {
			return "TRUE"
		}
		return "FALSE"
	case StringKind:
		return v.s
	default:
		return strconv.FormatInt(v.i, 10)
	}
}
