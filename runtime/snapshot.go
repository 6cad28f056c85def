package tbruntime

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gosuda/tinybasic/parser"
)

// Snapshot is the persisted execution state. Prog holds the program
// rendered back to numbered source lines; Line is the line about to
// execute, or 0 when there is no resume point.
type Snapshot struct {
	Vars  map[string]Number `json:"vars" yaml:"vars"`
	Stack []int             `json:"stack" yaml:"stack"`
	Line  int               `json:"line" yaml:"line"`
	Prog  []string          `json:"prog" yaml:"prog"`
}

// Number is a variable value that keeps its integer/float kind through
// JSON and YAML.
type Number struct {
	IsFloat bool
	Int     int64
	Float   float64
}

func NumberOf(v Value) Number {
	if v.Kind() == FloatKind {
		return Number{IsFloat: true, Float: v.Float64()}
	}
	return Number{Int: v.Int64()}
}

func (n Number) Value() Value {
	if n.IsFloat {
		return Float(n.Float)
	}
	return Int(n.Int)
}

func (n Number) text() string {
	if !n.IsFloat {
		return strconv.FormatInt(n.Int, 10)
	}
	s := strconv.FormatFloat(n.Float, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.IsFloat && (math.IsInf(n.Float, 0) || math.IsNaN(n.Float)) {
		return json.Marshal(strconv.FormatFloat(n.Float, 'g', -1, 64))
	}
	return []byte(n.text()), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*n = Number{IsFloat: true, Float: f}
		return nil
	}
	return n.parse(raw, strings.ContainsAny(raw, ".eE"))
}

func (n Number) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: n.text()}
	if n.IsFloat {
		node.Tag = "!!float"
		switch {
		case math.IsInf(n.Float, 1):
			node.Value = ".inf"
		case math.IsInf(n.Float, -1):
			node.Value = "-.inf"
		case math.IsNaN(n.Float):
			node.Value = ".nan"
		}
	}
	return node, nil
}

func (n *Number) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: variable value must be a number", value.Line)
	}
	switch value.ShortTag() {
	case "!!int":
		return n.parse(value.Value, false)
	case "!!float":
		switch strings.ToLower(value.Value) {
		case ".inf", "+.inf":
			*n = Number{IsFloat: true, Float: math.Inf(1)}
			return nil
		case "-.inf":
			*n = Number{IsFloat: true, Float: math.Inf(-1)}
			return nil
		case ".nan":
			*n = Number{IsFloat: true, Float: math.NaN()}
			return nil
		}
		return n.parse(value.Value, true)
	default:
		return fmt.Errorf("line %d: variable value %q is not a number", value.Line, value.Value)
	}
}

func (n *Number) parse(raw string, isFloat bool) error {
	if !isFloat {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			*n = Number{Int: i}
			return nil
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", raw)
	}
	*n = Number{IsFloat: true, Float: f}
	return nil
}

// Snapshot captures variables, the GOSUB stack, the resume line and the
// program source.
func (vm *VM) Snapshot() *Snapshot {
	snap := &Snapshot{
		Vars:  make(map[string]Number, len(vm.vars)),
		Stack: append([]int{}, vm.stack...),
		Prog:  vm.List(),
	}
	for k, v := range vm.vars {
		snap.Vars[k] = NumberOf(v)
	}
	if vm.resume {
		snap.Line = vm.pc
	}
	return snap
}

// LoadSnapshot replaces the program and all execution state. The program is
// re-parsed from source; any syntax error fails the whole load and leaves
// the VM unchanged.
func (vm *VM) LoadSnapshot(snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("nil snapshot")
	}
	lines, err := parser.ParseLines(snap.Prog)
	if err != nil {
		return fmt.Errorf("snapshot program: %w", err)
	}
	vars := make(map[string]Value, len(snap.Vars))
	names := make([]string, 0, len(snap.Vars))
	for k := range snap.Vars {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		if !validVarName(k) {
			return fmt.Errorf("snapshot vars: %w: %q", parser.ErrBadVariable, k)
		}
		vars[k] = snap.Vars[k].Value()
	}
	for _, site := range snap.Stack {
		if site <= 0 {
			return fmt.Errorf("snapshot stack: %w: %d", ErrBadLineNumber, site)
		}
	}
	if snap.Line < 0 {
		return fmt.Errorf("snapshot line: %w: %d", ErrBadLineNumber, snap.Line)
	}

	store := NewStore()
	next := 1
	for _, l := range lines {
		store.Set(l.Number, l.Stmt)
		next = l.Number + 1
	}
	vm.store = store
	vm.nextLine = next
	vm.vars = vars
	vm.stack = append([]int(nil), snap.Stack...)
	vm.pc = snap.Line
	vm.resume = snap.Line != 0
	return nil
}

// MarshalSnapshot encodes a snapshot as single-line JSON.
func MarshalSnapshot(snap *Snapshot) ([]byte, error) {
	b, err := json.Marshal(normalizeSnapshot(snap))
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return b, nil
}

func UnmarshalSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return normalizeSnapshot(&snap), nil
}

func MarshalSnapshotYAML(snap *Snapshot) ([]byte, error) {
	b, err := yaml.Marshal(normalizeSnapshot(snap))
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return b, nil
}

func UnmarshalSnapshotYAML(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return normalizeSnapshot(&snap), nil
}

// normalizeSnapshot replaces nil collections so encoders write {} and []
// rather than null.
func normalizeSnapshot(snap *Snapshot) *Snapshot {
	if snap == nil {
		snap = &Snapshot{}
	}
	cp := *snap
	if cp.Vars == nil {
		cp.Vars = map[string]Number{}
	}
	if cp.Stack == nil {
		cp.Stack = []int{}
	}
	if cp.Prog == nil {
		cp.Prog = []string{}
	}
	return &cp
}
