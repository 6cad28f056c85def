package tbruntime

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gosuda/tinybasic/ast"
	"github.com/gosuda/tinybasic/parser"
)

// Prompt is written before every value INPUT reads.
const Prompt = "?"

type Output struct {
	Text    string `json:"text"`
	NewLine bool   `json:"newline"`
}

// InputProvider returns the next input line. ok is false when no line is
// available, which suspends the run.
type InputProvider func() (line string, ok bool, err error)

type VM struct {
	store         *Store
	vars          map[string]Value
	stack         []int
	pc            int
	resume        bool
	nextLine      int
	outputs       []Output
	outputHook    func(Output)
	inputProvider InputProvider
	queue         []string
	traceHook     func(line int, stmt ast.Statement)
	rng           *rand.Rand
}

func New() *VM {
	return &VM{
		store:    NewStore(),
		vars:     map[string]Value{},
		stack:    nil,
		nextLine: 1,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewWithLines builds a VM whose store holds lines. Later duplicates of a
// line number replace earlier ones.
func NewWithLines(lines []ast.Line) *VM {
	vm := New()
	vm.Load(lines)
	return vm
}

func (vm *VM) Load(lines []ast.Line) {
	for _, l := range lines {
		vm.store.Set(l.Number, l.Stmt)
		vm.nextLine = l.Number + 1
	}
}

// ParseLine compiles one line of program text into the store. A line
// without a number continues from the last stored line; a number with no
// statement deletes that line. A failing line leaves the store untouched.
func (vm *VM) ParseLine(text string) error {
	sl, err := parser.SplitLineNumber(text)
	if err != nil {
		return err
	}
	explicit := sl.Number != 0
	if !explicit {
		sl.Number = vm.nextLine
	}
	if strings.TrimSpace(sl.Text) == "" {
		if explicit {
			vm.store.Delete(sl.Number)
		}
		return nil
	}
	stmt, err := parser.ParseStatement(sl.Number, sl.Text)
	if err != nil {
		return err
	}
	vm.store.Set(sl.Number, stmt)
	vm.nextLine = sl.Number + 1
	return nil
}

func (vm *VM) Store() *Store {
	return vm.store
}

// List renders the stored program as numbered source lines.
func (vm *VM) List() []string {
	lines := vm.store.Lines()
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, ast.FormatLine(l))
	}
	return out
}

// Clear forgets the program and all execution state.
func (vm *VM) Clear() {
	vm.store.Clear()
	vm.nextLine = 1
	vm.Reset()
}

// Reset clears variables, the GOSUB stack and any pending resume point so
// the next Run starts from the first line.
func (vm *VM) Reset() {
	vm.vars = map[string]Value{}
	vm.stack = nil
	vm.pc = 0
	vm.resume = false
}

// Resuming reports whether the next Run continues from a resume point, and
// which line it is.
func (vm *VM) Resuming() (int, bool) {
	return vm.pc, vm.resume
}

func (vm *VM) SetOutputHook(hook func(Output)) {
	vm.outputHook = hook
}

func (vm *VM) SetInputProvider(p InputProvider) {
	vm.inputProvider = p
}

func (vm *VM) SetTraceHook(hook func(line int, stmt ast.Statement)) {
	vm.traceHook = hook
}

// SetSeed makes RND deterministic.
func (vm *VM) SetSeed(seed int64) {
	vm.rng = rand.New(rand.NewSource(seed))
}

func (vm *VM) EnqueueInput(values ...string) {
	vm.queue = append(vm.queue, values...)
}

func (vm *VM) emitOutput(out Output) {
	if vm.outputHook != nil {
		vm.outputHook(out)
		return
	}
	vm.outputs = append(vm.outputs, out)
}

func validVarName(name string) bool {
	return len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z'
}

func (vm *VM) getVar(name string) Value {
	if v, ok := vm.vars[name]; ok {
		return v
	}
	return Int(0)
}

func (vm *VM) SetVar(name string, v Value) error {
	if !validVarName(name) {
		return fmt.Errorf("%w: %q", parser.ErrBadVariable, name)
	}
	if !v.IsNumber() {
		return fmt.Errorf("%w: variable %s cannot hold a %s", ErrTypeMismatch, name, v.Kind())
	}
	vm.vars[name] = v
	return nil
}

// Var returns a variable's value; unset variables read as 0.
func (vm *VM) Var(name string) Value {
	return vm.getVar(name)
}

func (vm *VM) Vars() map[string]Value {
	cp := make(map[string]Value, len(vm.vars))
	for k, v := range vm.vars {
		cp[k] = v
	}
	return cp
}

func (vm *VM) Stack() []int {
	return append([]int(nil), vm.stack...)
}
