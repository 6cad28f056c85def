package ast

import (
	"strconv"
	"strings"
)

// Format renders a statement back to source text that parses to an
// equivalent statement.
func Format(stmt Statement) string {
	var b strings.Builder
	writeStmt(&b, stmt)
	return b.String()
}

// FormatLine renders a numbered line, e.g. "10 PRINT A".
func FormatLine(l Line) string {
	return strconv.Itoa(l.Number) + " " + Format(l.Stmt)
}

// FormatExpr renders an expression with the minimum parentheses needed to
// keep its shape.
func FormatExpr(e Expr) string {
	var b strings.Builder
	writeExpr(&b, e)
	return b.String()
}

func writeStmt(b *strings.Builder, stmt Statement) {
	switch s := stmt.(type) {
	case LetStmt:
		b.WriteString("LET ")
		b.WriteString(s.Var)
		b.WriteString(" = ")
		writeExpr(b, s.Expr)
	case PrintStmt:
		b.WriteString("PRINT")
		for i, it := range s.Items {
			if it.IsSeparator() {
				b.WriteString(it.Sep)
				continue
			}
			if i == 0 || s.Items[i-1].IsSeparator() {
				b.WriteByte(' ')
			}
			writeExpr(b, it.Expr)
		}
	case InputStmt:
		b.WriteString("INPUT ")
		b.WriteString(strings.Join(s.Vars, ", "))
	case IfStmt:
		b.WriteString("IF ")
		writeExpr(b, s.Cond)
		b.WriteString(" THEN ")
		writeStmt(b, s.Then)
	case GotoStmt:
		b.WriteString("GOTO ")
		writeExpr(b, s.Target)
	case GosubStmt:
		b.WriteString("GOSUB ")
		writeExpr(b, s.Target)
	case ReturnStmt:
		b.WriteString("RETURN")
	case EndStmt:
		b.WriteString("END")
	case RemStmt:
		b.WriteString("REM")
		b.WriteString(s.Text)
	}
}

func writeExpr(b *strings.Builder, e Expr) {
	switch ex := e.(type) {
	case NumberLit:
		b.WriteString(numberText(ex))
	case StringLit:
		b.WriteByte('"')
		b.WriteString(ex.Value)
		b.WriteByte('"')
	case VarRef:
		b.WriteString(ex.Name)
	case UnaryExpr:
		b.WriteString(ex.Op)
		if _, ok := ex.Expr.(BinaryExpr); ok {
			b.WriteByte('(')
			writeExpr(b, ex.Expr)
			b.WriteByte(')')
			return
		}
		writeExpr(b, ex.Expr)
	case BinaryExpr:
		prec := Precedence(ex.Op)
		writeOperand(b, ex.Left, prec, false)
		b.WriteByte(' ')
		b.WriteString(ex.Op)
		b.WriteByte(' ')
		writeOperand(b, ex.Right, prec, true)
	case CallExpr:
		b.WriteString(ex.Name)
		b.WriteByte('(')
		writeExpr(b, ex.Arg)
		b.WriteByte(')')
	case TabExpr:
		b.WriteString("TAB(")
		writeExpr(b, ex.Column)
		b.WriteByte(')')
	}
}

// Binary operators are left-associative, so a right operand of equal
// precedence needs parentheses while a left one does not.
func writeOperand(b *strings.Builder, e Expr, parent int, right bool) {
	bin, ok := e.(BinaryExpr)
	if !ok {
		writeExpr(b, e)
		return
	}
	prec := Precedence(bin.Op)
	if prec < parent || (right && prec == parent) {
		b.WriteByte('(')
		writeExpr(b, e)
		b.WriteByte(')')
		return
	}
	writeExpr(b, e)
}

// Precedence returns the binding strength of a binary operator; higher binds
// tighter.
func Precedence(op string) int {
	switch op {
	case "*", "/":
		return 3
	case "+", "-":
		return 2
	case "=", "<>", "<", "<=", ">", ">=":
		return 1
	default:
		return 0
	}
}

func numberText(n NumberLit) string {
	if n.Raw != "" {
		return n.Raw
	}
	if !n.IsFloat {
		return strconv.FormatInt(n.Int, 10)
	}
	s := strconv.FormatFloat(n.Float, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
