package parser

import (
	"errors"
	"testing"

	"github.com/gosuda/tinybasic/ast"
)

func TestParseLetPrecedence(t *testing.T) {
	stmt, err := ParseStatement(10, "LET A = 2 + 3 * 4")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	let, ok := stmt.(ast.LetStmt)
	if !ok || let.Var != "A" {
		t.Fatalf("unexpected statement: %#v", stmt)
	}
	add, ok := let.Expr.(ast.BinaryExpr)
	if !ok || add.Op != "+" {
		t.Fatalf("expected + at the root, got %#v", let.Expr)
	}
	mul, ok := add.Right.(ast.BinaryExpr)
	if !ok || mul.Op != "*" {
		t.Fatalf("expected * on the right, got %#v", add.Right)
	}
}

func TestParseLeftAssociative(t *testing.T) {
	e, err := ParseExpr("8 - 3 - 1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	root := e.(ast.BinaryExpr)
	if _, ok := root.Left.(ast.BinaryExpr); !ok {
		t.Fatalf("expected (8 - 3) - 1, got %#v", e)
	}
}

func TestParsePrintItems(t *testing.T) {
	stmt, err := ParseStatement(20, `PRINT "X=";X, TAB(10);-Y,`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	p := stmt.(ast.PrintStmt)
	if len(p.Items) != 8 {
		t.Fatalf("unexpected items: %#v", p.Items)
	}
	if _, ok := p.Items[0].Expr.(ast.StringLit); !ok {
		t.Fatalf("item 0 must be a string: %#v", p.Items[0])
	}
	if p.Items[1].Sep != ";" || p.Items[3].Sep != "," || p.Items[7].Sep != "," {
		t.Fatalf("unexpected separators: %#v", p.Items)
	}
	if _, ok := p.Items[4].Expr.(ast.TabExpr); !ok {
		t.Fatalf("item 4 must be TAB: %#v", p.Items[4])
	}

	empty, err := ParseStatement(30, "PRINT")
	if err != nil {
		t.Fatalf("empty PRINT: %v", err)
	}
	if len(empty.(ast.PrintStmt).Items) != 0 {
		t.Fatalf("empty PRINT must have no items")
	}
}

func TestParseIfNestsStatement(t *testing.T) {
	stmt, err := ParseStatement(40, "IF A >= 10 THEN IF B <> 0 THEN GOTO 100")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	outer := stmt.(ast.IfStmt)
	if cond := outer.Cond.(ast.BinaryExpr); cond.Op != ">=" {
		t.Fatalf("unexpected condition: %#v", outer.Cond)
	}
	inner, ok := outer.Then.(ast.IfStmt)
	if !ok {
		t.Fatalf("expected nested IF, got %#v", outer.Then)
	}
	if _, ok := inner.Then.(ast.GotoStmt); !ok {
		t.Fatalf("expected GOTO, got %#v", inner.Then)
	}
}

func TestParseGosubRecordsCallSite(t *testing.T) {
	stmt, err := ParseStatement(70, "GOSUB 200")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if g := stmt.(ast.GosubStmt); g.Line != 70 {
		t.Fatalf("call site %d, want 70", g.Line)
	}
}

func TestParseInputAndCalls(t *testing.T) {
	stmt, err := ParseStatement(5, "INPUT A, B,C")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if in := stmt.(ast.InputStmt); len(in.Vars) != 3 || in.Vars[2] != "C" {
		t.Fatalf("unexpected vars: %#v", in.Vars)
	}
	stmt, err = ParseStatement(6, "LET R = SQR(ABS(-4)) + INT(RND(1) * 6)")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	sum := stmt.(ast.LetStmt).Expr.(ast.BinaryExpr)
	if call := sum.Left.(ast.CallExpr); call.Name != "SQR" {
		t.Fatalf("unexpected call: %#v", sum.Left)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		want error
	}{
		{src: "LET AB = 1", want: ErrBadVariable},
		{src: "LET a = 1", want: ErrBadVariable},
		{src: "INPUT A,", want: ErrBadVariable},
		{src: "LET A 1", want: ErrUnexpectedToken},
		{src: "PRINT A B", want: ErrUnexpectedToken},
		{src: "IF A THEN END", want: ErrUnexpectedToken},
		{src: "IF A = 1 END", want: ErrUnexpectedToken},
		{src: "GOTO", want: ErrUnexpectedToken},
		{src: "END END", want: ErrUnexpectedToken},
		{src: "A = 1", want: ErrUnexpectedToken},
		{src: "LET A = (1 + 2", want: ErrUnexpectedToken},
		{src: "LET A = FOO(1)", want: ErrBadVariable},
		{src: "RUN", want: ErrImmediateCommand},
		{src: "IF A = 1 THEN LIST", want: ErrImmediateCommand},
		{src: `PRINT "x`, want: ErrUnterminatedString},
	}
	for _, tc := range tests {
		_, err := ParseStatement(50, tc.src)
		if !errors.Is(err, tc.want) {
			t.Fatalf("%q: expected %v, got %v", tc.src, tc.want, err)
		}
		var serr *SyntaxError
		if !errors.As(err, &serr) || serr.Line != 50 || serr.Source != tc.src {
			t.Fatalf("%q: unexpected error %#v", tc.src, err)
		}
	}
}

func TestParseDeepNestingFails(t *testing.T) {
	src := "LET A = "
	for i := 0; i < 400; i++ {
		src += "("
	}
	src += "1"
	for i := 0; i < 400; i++ {
		src += ")"
	}
	if _, err := ParseStatement(1, src); !errors.Is(err, ErrUnexpectedToken) {
		t.Fatalf("expected nesting error, got %v", err)
	}
}

func TestImmediate(t *testing.T) {
	tests := []struct {
		src string
		cmd string
		ok  bool
	}{
		{src: "list", cmd: "LIST", ok: true},
		{src: "  RUN ", cmd: "RUN", ok: true},
		{src: "Clear", cmd: "CLEAR", ok: true},
		{src: "LIST 10"},
		{src: "10 RUN"},
		{src: "PRINT"},
	}
	for _, tc := range tests {
		cmd, ok := Immediate(tc.src)
		if cmd != tc.cmd || ok != tc.ok {
			t.Fatalf("%q: got (%q, %v), want (%q, %v)", tc.src, cmd, ok, tc.cmd, tc.ok)
		}
	}
}
