package parser

import (
	"github.com/gosuda/tinybasic/ast"
)

const maxDepth = 256

// ParseStatement compiles one line of statement text. line is the line's
// number; GOSUB records it as its call site.
func ParseStatement(line int, text string) (ast.Statement, error) {
	toks, err := Tokenize(line, text)
	if err != nil {
		return nil, err
	}
	return ParseTokens(line, text, toks)
}

// ParseTokens compiles an already tokenized line. text is only used for
// error reporting.
func ParseTokens(line int, text string, toks []Token) (ast.Statement, error) {
	p := &stmtParser{line: line, text: text, tokens: toks}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != TokEOL {
		return nil, p.errorf(ErrUnexpectedToken, "unexpected %s after statement", describe(p.peek()))
	}
	return stmt, nil
}

// ParseExpr compiles a standalone arithmetic expression.
func ParseExpr(text string) (ast.Expr, error) {
	toks, err := Tokenize(0, text)
	if err != nil {
		return nil, err
	}
	p := &stmtParser{text: text, tokens: toks}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != TokEOL {
		return nil, p.errorf(ErrUnexpectedToken, "unexpected %s after expression", describe(p.peek()))
	}
	return e, nil
}

// Immediate reports whether text is an immediate-mode command (LIST, RUN or
// CLEAR) and returns the command word.
func Immediate(text string) (string, bool) {
	toks, err := Tokenize(0, text)
	if err != nil || len(toks) != 2 || toks[0].Kind != TokKeyword {
		return "", false
	}
	switch toks[0].Lit {
	case "LIST", "RUN", "CLEAR":
		return toks[0].Lit, true
	}
	return "", false
}

type stmtParser struct {
	line   int
	text   string
	tokens []Token
	pos    int
	depth  int
}

func (p *stmtParser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokEOL, Col: len([]rune(p.text))}
	}
	return p.tokens[p.pos]
}

func (p *stmtParser) next() Token {
	t := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *stmtParser) isOp(lit string) bool {
	t := p.peek()
	return t.Kind == TokOp && t.Lit == lit
}

func (p *stmtParser) isKeyword(word string) bool {
	t := p.peek()
	return t.Kind == TokKeyword && t.Lit == word
}

func (p *stmtParser) expectOp(lit string) error {
	if !p.isOp(lit) {
		return p.errorf(ErrUnexpectedToken, "expected %q but got %s", lit, describe(p.peek()))
	}
	p.next()
	return nil
}

func (p *stmtParser) expectKeyword(word string) error {
	if !p.isKeyword(word) {
		return p.errorf(ErrUnexpectedToken, "expected %s but got %s", word, describe(p.peek()))
	}
	p.next()
	return nil
}

func (p *stmtParser) errorf(cause error, format string, args ...any) *SyntaxError {
	return newSyntaxError(ParseError, p.line, p.peek().Col, p.text, cause, format, args...)
}

func (p *stmtParser) parseStatement() (ast.Statement, error) {
	t := p.peek()
	if t.Kind != TokKeyword {
		return nil, p.errorf(ErrUnexpectedToken, "statement must start with a keyword, got %s", describe(t))
	}
	switch t.Lit {
	case "LET":
		p.next()
		name, err := p.parseVar()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp("="); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.LetStmt{Var: name, Expr: e}, nil
	case "PRINT":
		p.next()
		items, err := p.parsePrintItems()
		if err != nil {
			return nil, err
		}
		return ast.PrintStmt{Items: items}, nil
	case "INPUT":
		p.next()
		vars, err := p.parseVarList()
		if err != nil {
			return nil, err
		}
		return ast.InputStmt{Vars: vars}, nil
	case "IF":
		return p.parseIf()
	case "GOTO":
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.GotoStmt{Target: e}, nil
	case "GOSUB":
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.GosubStmt{Target: e, Line: p.line}, nil
	case "RETURN":
		p.next()
		return ast.ReturnStmt{}, nil
	case "END":
		p.next()
		return ast.EndStmt{}, nil
	case "REM":
		p.next()
		return ast.RemStmt{Text: t.Comment}, nil
	case "LIST", "RUN", "CLEAR":
		return nil, p.errorf(ErrImmediateCommand, "%s is an immediate command", t.Lit)
	default:
		return nil, p.errorf(ErrUnexpectedToken, "cannot parse statement starting with %s", t.Lit)
	}
}

func (p *stmtParser) parseIf() (ast.Statement, error) {
	p.depth++
	if p.depth > maxDepth {
		return nil, p.errorf(ErrUnexpectedToken, "IF chain nested too deep")
	}
	defer func() { p.depth-- }()

	p.next()
	left, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	op := p.peek()
	if op.Kind != TokOp || !ast.IsRelational(op.Lit) {
		return nil, p.errorf(ErrUnexpectedToken, "relational operator expected, got %s", describe(op))
	}
	p.next()
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("THEN"); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return ast.IfStmt{Cond: ast.BinaryExpr{Op: op.Lit, Left: left, Right: right}, Then: then}, nil
}

func (p *stmtParser) parseVar() (string, error) {
	t := p.peek()
	if t.Kind != TokIdent {
		return "", p.errorf(ErrBadVariable, "variable expected, got %s", describe(t))
	}
	if len(t.Lit) != 1 || t.Lit[0] < 'A' || t.Lit[0] > 'Z' {
		return "", p.errorf(ErrBadVariable, "bad variable name %q", t.Lit)
	}
	p.next()
	return t.Lit, nil
}

func (p *stmtParser) parseVarList() ([]string, error) {
	name, err := p.parseVar()
	if err != nil {
		return nil, err
	}
	vars := []string{name}
	for p.isOp(",") {
		p.next()
		name, err := p.parseVar()
		if err != nil {
			return nil, err
		}
		vars = append(vars, name)
	}
	return vars, nil
}

func (p *stmtParser) parsePrintItems() ([]ast.PrintItem, error) {
	items := []ast.PrintItem{}
	for p.peek().Kind != TokEOL {
		if p.isOp(",") || p.isOp(";") {
			items = append(items, ast.PrintItem{Sep: p.next().Lit})
			continue
		}
		if len(items) > 0 && !items[len(items)-1].IsSeparator() {
			return nil, p.errorf(ErrUnexpectedToken, "expected , or ; between PRINT items, got %s", describe(p.peek()))
		}
		e, err := p.parsePrintItem()
		if err != nil {
			return nil, err
		}
		items = append(items, ast.PrintItem{Expr: e})
	}
	return items, nil
}

func (p *stmtParser) parsePrintItem() (ast.Expr, error) {
	t := p.peek()
	switch {
	case t.Kind == TokKeyword && t.Lit == "TAB":
		p.next()
		if err := p.expectOp("("); err != nil {
			return nil, err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectOp(")"); err != nil {
			return nil, err
		}
		return ast.TabExpr{Column: e}, nil
	case t.Kind == TokString:
		p.next()
		return ast.StringLit{Value: t.Lit}, nil
	default:
		return p.parseExpr()
	}
}

// expr := term (("+"|"-") term)*
func (p *stmtParser) parseExpr() (ast.Expr, error) {
	p.depth++
	if p.depth > maxDepth {
		return nil, p.errorf(ErrUnexpectedToken, "expression nesting too deep")
	}
	defer func() { p.depth-- }()

	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.isOp("+") || p.isOp("-") {
		op := p.next().Lit
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

// term := factor (("*"|"/") factor)*
func (p *stmtParser) parseTerm() (ast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.isOp("*") || p.isOp("/") {
		op := p.next().Lit
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *stmtParser) parseFactor() (ast.Expr, error) {
	t := p.peek()
	switch t.Kind {
	case TokOp:
		switch t.Lit {
		case "+", "-":
			p.depth++
			if p.depth > maxDepth {
				return nil, p.errorf(ErrUnexpectedToken, "expression nesting too deep")
			}
			defer func() { p.depth-- }()
			p.next()
			operand, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			return ast.UnaryExpr{Op: t.Lit, Expr: operand}, nil
		case "(":
			p.next()
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectOp(")"); err != nil {
				return nil, err
			}
			return e, nil
		}
	case TokNumber:
		p.next()
		return ast.NumberLit{IsFloat: t.IsFloat, Int: t.Int, Float: t.Float, Raw: t.Lit}, nil
	case TokIdent:
		name, err := p.parseVar()
		if err != nil {
			return nil, err
		}
		return ast.VarRef{Name: name}, nil
	case TokKeyword:
		switch t.Lit {
		case "SQR", "INT", "RND", "ABS":
			p.next()
			if err := p.expectOp("("); err != nil {
				return nil, err
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectOp(")"); err != nil {
				return nil, err
			}
			return ast.CallExpr{Name: t.Lit, Arg: arg}, nil
		}
	}
	return nil, p.errorf(ErrUnexpectedToken, "unexpected %s in expression", describe(t))
}

func describe(t Token) string {
	switch t.Kind {
	case TokEOL:
		return "end of line"
	case TokString:
		return "string \"" + t.Lit + "\""
	case TokNumber:
		return "number " + t.Lit
	default:
		return t.Kind.String() + " " + t.Lit
	}
}
