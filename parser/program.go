package parser

import (
	"strconv"
	"strings"

	"github.com/gosuda/tinybasic/ast"
)

// SourceLine is one physical line split into its line number and statement
// text. Number is zero when the line carried no number.
type SourceLine struct {
	Number int
	Text   string
}

// SplitLineNumber separates a leading line number from the statement text.
func SplitLineNumber(raw string) (SourceLine, error) {
	raw = strings.TrimRight(raw, "\r\n")
	trimmed := strings.TrimLeft(raw, " \t")
	if trimmed == "" || !isDigit(rune(trimmed[0])) {
		return SourceLine{Text: trimmed}, nil
	}
	j := 0
	for j < len(trimmed) && isDigit(rune(trimmed[j])) {
		j++
	}
	n, err := strconv.Atoi(trimmed[:j])
	if err != nil || n <= 0 {
		return SourceLine{}, newSyntaxError(ParseError, 0, 0, raw, ErrBadLineNumber, "line number %q must be a positive integer", trimmed[:j])
	}
	return SourceLine{Number: n, Text: strings.TrimLeft(trimmed[j:], " \t")}, nil
}

// ParseProgram compiles a whole program text. Lines without a number take
// the previous line's number plus one; the first such line is 1. Blank lines
// and lines holding only a number are skipped. The first error aborts the
// load.
func ParseProgram(source string) ([]ast.Line, error) {
	return ParseLines(strings.Split(source, "\n"))
}

func ParseLines(raw []string) ([]ast.Line, error) {
	lines := make([]ast.Line, 0, len(raw))
	next := 1
	for _, r := range raw {
		if strings.TrimSpace(r) == "" {
			continue
		}
		sl, err := SplitLineNumber(r)
		if err != nil {
			return nil, err
		}
		if sl.Number == 0 {
			sl.Number = next
		}
		next = sl.Number + 1
		if strings.TrimSpace(sl.Text) == "" {
			continue
		}
		stmt, err := ParseStatement(sl.Number, sl.Text)
		if err != nil {
			return nil, err
		}
		lines = append(lines, ast.Line{Number: sl.Number, Stmt: stmt})
	}
	return lines, nil
}
