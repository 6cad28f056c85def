package ast

type Statement interface {
	isStatement()
}

type LetStmt struct {
	Var  string
	Expr Expr
}

func (LetStmt) isStatement() {}

type PrintStmt struct {
	Items []PrintItem
}

func (PrintStmt) isStatement() {}

// PrintItem is either an expression (including StringLit and TabExpr) or a
// separator. Exactly one of Expr and Sep is set.
type PrintItem struct {
	Expr Expr
	Sep  string // "," | ";"
}

func (it PrintItem) IsSeparator() bool {
	return it.Expr == nil
}

type InputStmt struct {
	Vars []string
}

func (InputStmt) isStatement() {}

type IfStmt struct {
	Cond Expr
	Then Statement
}

func (IfStmt) isStatement() {}

type GotoStmt struct {
	Target Expr
}

func (GotoStmt) isStatement() {}

type GosubStmt struct {
	Target Expr
	Line   int
}

func (GosubStmt) isStatement() {}

type ReturnStmt struct{}

func (ReturnStmt) isStatement() {}

type EndStmt struct{}

func (EndStmt) isStatement() {}

type RemStmt struct {
	Text string
}

func (RemStmt) isStatement() {}

type Expr interface {
	isExpr()
}

// NumberLit keeps the literal's source spelling in Raw so that rendering
// reproduces the original text.
type NumberLit struct {
	IsFloat bool
	Int     int64
	Float   float64
	Raw     string
}

func (NumberLit) isExpr() {}

type StringLit struct {
	Value string
}

func (StringLit) isExpr() {}

type VarRef struct {
	Name string
}

func (VarRef) isExpr() {}

type UnaryExpr struct {
	Op   string
	Expr Expr
}

func (UnaryExpr) isExpr() {}

type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (BinaryExpr) isExpr() {}

type CallExpr struct {
	Name string
	Arg  Expr
}

func (CallExpr) isExpr() {}

type TabExpr struct {
	Column Expr
}

func (TabExpr) isExpr() {}

// Line is one numbered program line.
type Line struct {
	Number int
	Stmt   Statement
}

func IsRelational(op string) bool {
	switch op {
	case "=", "<>", "<", "<=", ">", ">=":
		return true
	}
	return false
}
