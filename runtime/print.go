package tbruntime

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/gosuda/tinybasic/ast"
)

// execPrint renders a PRINT statement as one Output. The column counter
// starts at 0 for every statement.
func (vm *VM) execPrint(s ast.PrintStmt) error {
	var b strings.Builder
	col := 0
	for _, it := range s.Items {
		if it.IsSeparator() {
			if it.Sep == ";" {
				b.WriteByte(' ')
				col++
			}
			continue
		}
		if tab, ok := it.Expr.(ast.TabExpr); ok {
			v, err := vm.evalExpr(tab.Column)
			if err != nil {
				return err
			}
			target, err := tabColumn(v)
			if err != nil {
				return err
			}
			if target > col {
				b.WriteString(strings.Repeat(" ", target-col))
				col = target
			}
			continue
		}
		v, err := vm.evalExpr(it.Expr)
		if err != nil {
			return err
		}
		text := v.String()
		b.WriteString(text)
		col += utf8.RuneCountInString(text)
	}
	newline := true
	if n := len(s.Items); n > 0 && s.Items[n-1].IsSeparator() && s.Items[n-1].Sep == "," {
		newline = false
	}
	vm.emitOutput(Output{Text: b.String(), NewLine: newline})
	return nil
}

// maxTabColumn bounds the padding a single TAB may write.
const maxTabColumn = 1 << 16

func tabColumn(v Value) (int, error) {
	if !v.IsNumber() {
		return 0, typeMismatch("TAB", v)
	}
	if v.Kind() == FloatKind {
		f := v.Float64()
		if math.IsNaN(f) || f > maxTabColumn {
			return 0, fmt.Errorf("%w: %s", ErrTabRange, v)
		}
		if f < 0 {
			return 0, nil
		}
		return int(f), nil
	}
	n := v.Int64()
	if n > maxTabColumn {
		return 0, fmt.Errorf("%w: %s", ErrTabRange, v)
	}
	if n < 0 {
		return 0, nil
	}
	return int(n), nil
}
